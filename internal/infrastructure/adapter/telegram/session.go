package telegram

import (
	"sync"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// SessionState is the step a user is at inside a multi-step chat flow
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingSellerQuery
	StateAwaitingAmount
	StateAwaitingTerms
	StateAwaitingAdminAdd
	StateAwaitingAdminRemove
)

// Session carries the partial input of a multi-step flow, keyed by actor id.
// Any navigation away from the flow clears it.
type Session struct {
	State       SessionState
	SellerID    int64
	SellerLabel string
	AmountCents int64
	Currency    entity.Currency
}

// SessionStore is an in-memory session map, safe for concurrent use
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]Session),
	}
}

// Get returns the user's session, idle when none exists
func (s *SessionStore) Get(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Set stores the user's session
func (s *SessionStore) Set(userID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Clear drops the user's session, returning them to idle
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
