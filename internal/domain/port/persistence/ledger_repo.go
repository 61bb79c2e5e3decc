package persistence

import (
	"context"
	"time"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// BalanceRepository stores per-(user, currency) running totals
type BalanceRepository interface {
	// Credit lazily creates the balance row at zero and adds the given
	// cents as one atomic increment. Negative amounts are accepted at this
	// layer; business rules live above it.
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Credit(ctx context.Context, userID int64, currency entity.Currency, cents int64) error

	// Get returns the balance, a zero-valued row when none exists yet
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Get(ctx context.Context, userID int64, currency entity.Currency) (*entity.Balance, error)
}

// WithdrawalRepository stores withdrawal requests and owns the atomic
// approval unit
type WithdrawalRepository interface {
	// Create persists a new request in REQUESTED and fills in its id
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Create(ctx context.Context, w *entity.Withdrawal) error

	// GetByID retrieves a withdrawal by id
	//
	// Possible errors:
	// - ErrWithdrawalNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error)

	// Approve performs the whole approval as one atomic unit: lock the
	// request, verify it is still REQUESTED, lock the balance, verify
	// funds, debit, flip to APPROVED, stamp approved_at. A concurrent
	// second approval observes the flipped status and is rejected; the
	// balance is never debited twice.
	//
	// Possible errors:
	// - ErrWithdrawalNotFound: absent id or already processed
	// - InsufficientBalanceError (wraps ErrInsufficientBalance) carrying
	//   the balance observed at approval time; no mutation happened
	// - ErrDatabaseConnection
	Approve(ctx context.Context, id int64, at time.Time) (*entity.Withdrawal, error)

	// ListByStatus returns requests in the given status, most recent first
	ListByStatus(ctx context.Context, status entity.WithdrawalStatus, limit int) ([]*entity.Withdrawal, error)
}
