package entity

import "time"

// WithdrawalStatus is the closed set of states a withdrawal request can be in
type WithdrawalStatus string

const (
	WithdrawalRequested WithdrawalStatus = "REQUESTED"
	WithdrawalApproved  WithdrawalStatus = "APPROVED"
)

// Withdrawal is a user-initiated intent to cash out a ledger balance.
// It mutates exactly once, REQUESTED -> APPROVED, by administrator action,
// and is immutable afterward.
type Withdrawal struct {
	ID          int64
	UserID      int64
	Currency    Currency
	AmountCents int64
	Status      WithdrawalStatus
	CreatedAt   time.Time
	ApprovedAt  *time.Time
}

// Amount returns the requested amount with currency as a display string
func (w *Withdrawal) Amount() string {
	return FormatMoney(w.AmountCents, w.Currency)
}
