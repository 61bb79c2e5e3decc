package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	cases := map[error]int{
		ErrValidation:          CodeValidation,
		ErrInvalidAmount:       CodeInvalidAmount,
		ErrInvalidCurrency:     CodeInvalidCurrency,
		ErrTermsTooShort:       CodeTermsTooShort,
		ErrSelfDeal:            CodeSelfDeal,
		ErrForbidden:           CodeForbidden,
		ErrUserNotFound:        CodeUserNotFound,
		ErrDealNotFound:        CodeDealNotFound,
		ErrWithdrawalNotFound:  CodeWithdrawalNotFound,
		ErrInvalidState:        CodeInvalidState,
		ErrInviteExpired:       CodeInviteExpired,
		ErrInsufficientBalance: CodeInsufficientBalance,
		ErrInternalServer:      CodeInternalServer,
		errors.New("something"): CodeInternalServer,
	}
	for err, want := range cases {
		assert.Equal(t, want, ErrorCode(err), "error %v", err)
	}

	// Wrapping preserves the code
	wrapped := fmt.Errorf("context: %w", ErrDealNotFound)
	assert.Equal(t, CodeDealNotFound, ErrorCode(wrapped))
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(100, "USDT", "50.00", "10.00")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, IsInsufficientBalanceError(err))
	assert.Contains(t, err.Error(), "user 100")
	assert.Contains(t, err.Error(), "50.00 USDT")

	var ibe *InsufficientBalanceError
	assert.True(t, errors.As(err, &ibe))
	assert.Equal(t, int64(100), ibe.UserID)
	assert.Equal(t, CodeInsufficientBalance, ibe.LogFields()["error_code"])
}

func TestTransitionError(t *testing.T) {
	err := NewTransitionError(7, "DECLINED", "accept", ErrInvalidState)

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, CodeInvalidState, ErrorCode(err))
	assert.Contains(t, err.Error(), "deal #7")

	var te *TransitionError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "DECLINED", te.From)
	assert.Equal(t, "accept", te.Action)
}

func TestErrorFamilies(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrDealNotFound))
	assert.True(t, IsNotFoundError(ErrWithdrawalNotFound))
	assert.False(t, IsNotFoundError(ErrForbidden))

	assert.True(t, IsValidationError(ErrInvalidAmount))
	assert.True(t, IsValidationError(ErrSelfDeal))
	assert.False(t, IsValidationError(ErrDealNotFound))
}
