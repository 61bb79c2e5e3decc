package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	// Unknown users start idle
	assert.Equal(t, StateIdle, store.Get(100).State)

	store.Set(100, Session{
		State:       StateAwaitingTerms,
		SellerID:    200,
		SellerLabel: "@seller",
		AmountCents: 10000,
		Currency:    entity.CurrencyUSDT,
	})

	session := store.Get(100)
	assert.Equal(t, StateAwaitingTerms, session.State)
	assert.Equal(t, int64(200), session.SellerID)
	assert.Equal(t, int64(10000), session.AmountCents)

	// Other users are unaffected
	assert.Equal(t, StateIdle, store.Get(101).State)

	store.Clear(100)
	assert.Equal(t, StateIdle, store.Get(100).State)
}
