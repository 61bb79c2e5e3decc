package entity

import (
	"strconv"
	"strings"
	"time"
)

// User is a Telegram account known to the bot. A row is created on first
// contact and only handle/last_seen_at change afterwards; users are never
// deleted.
type User struct {
	TelegramID int64
	Handle     string // normalized lowercase, without "@"; empty when the account has none
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// NormalizeHandle lowercases a Telegram username and strips the "@" prefix
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// NewUser builds a user record for a first contact
func NewUser(telegramID int64, handle string, now time.Time) *User {
	return &User{
		TelegramID: telegramID,
		Handle:     NormalizeHandle(handle),
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// Label returns a human-oriented reference for the user: "@handle" when a
// handle is known, the numeric id otherwise
func (u *User) Label() string {
	if u.Handle != "" {
		return "@" + u.Handle
	}
	return "ID " + strconv.FormatInt(u.TelegramID, 10)
}
