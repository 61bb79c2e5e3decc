package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidCurrency     = 4003
	CodeTermsTooShort       = 4004
	CodeSelfDeal            = 4005
	CodeForbidden           = 4030
	CodeUserNotFound        = 4040
	CodeDealNotFound        = 4041
	CodeWithdrawalNotFound  = 4042
	CodeInvalidState        = 4090
	CodeInviteExpired       = 4100
	CodeInsufficientBalance = 4220

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when an input fails a business validation rule
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when the amount format is invalid or not positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned when the currency is not one of the supported values
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrTermsTooShort is returned when the deal terms do not meet the minimum length
	ErrTermsTooShort = errors.New("deal terms are too short")

	// ErrSelfDeal is returned when buyer and seller are the same user
	ErrSelfDeal = errors.New("buyer and seller must be different users")

	// ErrForbidden is returned when the actor lacks the role required for the action
	ErrForbidden = errors.New("actor is not allowed to perform this action")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDealNotFound is returned when the requested deal or invite token doesn't exist
	ErrDealNotFound = errors.New("deal not found")

	// ErrWithdrawalNotFound is returned when the withdrawal doesn't exist or was already processed
	ErrWithdrawalNotFound = errors.New("withdrawal not found or already processed")

	// ErrInvalidState is returned when an action is attempted outside its licensing state
	ErrInvalidState = errors.New("deal is not in the required state")

	// ErrInviteExpired is returned when an invite is accessed past its deadline
	ErrInviteExpired = errors.New("invite has expired")

	// ErrInsufficientBalance is returned when a withdrawal approval exceeds the current balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOwnerIsAdmin is returned when the owner is added to the admin set; the
	// owner already holds every privilege, so the call is a distinct no-op
	ErrOwnerIsAdmin = errors.New("owner already has full access")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidCurrency
	case errors.Is(err, ErrTermsTooShort):
		return CodeTermsTooShort
	case errors.Is(err, ErrSelfDeal):
		return CodeSelfDeal
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDealNotFound):
		return CodeDealNotFound
	case errors.Is(err, ErrWithdrawalNotFound):
		return CodeWithdrawalNotFound
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrInviteExpired):
		return CodeInviteExpired
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError carries the balance observed at approval time
type InsufficientBalanceError struct {
	UserID   int64
	Currency string
	Amount   string
	Balance  string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s %s, available %s %s",
		e.UserID, e.Amount, e.Currency, e.Balance, e.Currency)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"user_id":    e.UserID,
		"currency":   e.Currency,
		"amount":     e.Amount,
		"balance":    e.Balance,
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID int64, currency, amount, balance string) error {
	return &InsufficientBalanceError{
		UserID:   userID,
		Currency: currency,
		Amount:   amount,
		Balance:  balance,
	}
}

// TransitionError describes a rejected deal state transition
type TransitionError struct {
	DealID int64
	From   string
	Action string
	Err    error
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	return fmt.Sprintf("deal #%d: action %q not allowed in state %q: %v",
		e.DealID, e.Action, e.From, e.Err)
}

// Unwrap returns the underlying error
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "transition_rejected",
		"deal_id":    e.DealID,
		"from":       e.From,
		"action":     e.Action,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewTransitionError creates a detailed transition error
func NewTransitionError(dealID int64, from, action string, err error) error {
	return &TransitionError{DealID: dealID, From: from, Action: action, Err: err}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDealNotFound) ||
		errors.Is(err, ErrWithdrawalNotFound)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsValidationError checks if the error belongs to the validation family
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrTermsTooShort) ||
		errors.Is(err, ErrSelfDeal)
}
