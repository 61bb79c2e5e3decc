package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

func TestNewDeal(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create deal in INVITE_CREATED with 24h expiry", func(t *testing.T) {
		deal, err := NewDeal(1, 2, 10000, CurrencyUSDT, "iPhone 15, sealed box", "tok123", now)

		assert.NoError(t, err)
		assert.Equal(t, StatusInviteCreated, deal.Status)
		assert.Equal(t, now.Add(InviteTTL), deal.ExpiresAt)
		assert.Equal(t, int64(1), deal.BuyerID)
		assert.Equal(t, int64(2), deal.SellerID)
		assert.Equal(t, "tok123", deal.InviteToken)
		assert.Equal(t, "100.00 USDT", deal.Amount())
	})

	t.Run("should reject self deal", func(t *testing.T) {
		_, err := NewDeal(1, 1, 10000, CurrencyUSDT, "iPhone 15, sealed box", "tok", now)
		assert.ErrorIs(t, err, errs.ErrSelfDeal)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		_, err := NewDeal(1, 2, 0, CurrencyUSDT, "iPhone 15, sealed box", "tok", now)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewDeal(1, 2, -500, CurrencyUSDT, "iPhone 15, sealed box", "tok", now)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject unknown currency", func(t *testing.T) {
		_, err := NewDeal(1, 2, 10000, Currency("EUR"), "iPhone 15, sealed box", "tok", now)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
	})

	t.Run("should reject too short terms", func(t *testing.T) {
		_, err := NewDeal(1, 2, 10000, CurrencyUSDT, "short", "tok", now)
		assert.ErrorIs(t, err, errs.ErrTermsTooShort)

		// Whitespace doesn't count towards the minimum
		_, err = NewDeal(1, 2, 10000, CurrencyUSDT, "   a b    ", "tok", now)
		assert.ErrorIs(t, err, errs.ErrTermsTooShort)
	})
}

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to DealStatus
	}{
		{StatusInviteCreated, StatusAwaitingDeposit},
		{StatusInviteCreated, StatusDeclined},
		{StatusInviteCreated, StatusExpired},
		{StatusAwaitingDeposit, StatusDepositConfirmed},
		{StatusDepositConfirmed, StatusDelivered},
		{StatusDelivered, StatusReleased},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct {
		from, to DealStatus
	}{
		{StatusInviteCreated, StatusDepositConfirmed},
		{StatusAwaitingDeposit, StatusDeclined},
		{StatusAwaitingDeposit, StatusReleased},
		{StatusDepositConfirmed, StatusReleased},
		{StatusReleased, StatusDelivered},
		{StatusDeclined, StatusAwaitingDeposit},
		{StatusExpired, StatusAwaitingDeposit},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be forbidden", tc.from, tc.to)
	}
}

func TestDealStatus_Terminal(t *testing.T) {
	assert.True(t, StatusReleased.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusExpired.Terminal())

	assert.False(t, StatusInviteCreated.Terminal())
	assert.False(t, StatusAwaitingDeposit.Terminal())
	assert.False(t, StatusDepositConfirmed.Terminal())
	assert.False(t, StatusDelivered.Terminal())
}

func TestDeal_InviteExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deal, err := NewDeal(1, 2, 10000, CurrencyUSDT, "iPhone 15, sealed box", "tok", now)
	assert.NoError(t, err)

	assert.False(t, deal.InviteExpired(now))
	assert.False(t, deal.InviteExpired(now.Add(InviteTTL)))
	assert.True(t, deal.InviteExpired(now.Add(InviteTTL+time.Second)))

	// Only a pending invite can expire
	deal.Status = StatusAwaitingDeposit
	assert.False(t, deal.InviteExpired(now.Add(48*time.Hour)))
}
