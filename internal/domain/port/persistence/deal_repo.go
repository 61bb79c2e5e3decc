package persistence

import (
	"context"
	"time"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// DealRepository stores deals and their invite tokens
type DealRepository interface {
	// Create persists a new deal and fills in its sequential id
	//
	// Possible errors:
	// - ErrDatabaseConnection: if the database is unreachable (a token
	//   collision would surface here as a unique-constraint failure)
	Create(ctx context.Context, deal *entity.Deal) error

	// GetByID retrieves a deal by id
	//
	// Possible errors:
	// - ErrDealNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id int64) (*entity.Deal, error)

	// GetByToken retrieves a deal by its invite token
	//
	// Possible errors:
	// - ErrDealNotFound
	// - ErrDatabaseConnection
	GetByToken(ctx context.Context, token string) (*entity.Deal, error)

	// Transition atomically moves the deal from one status to another and
	// stamps the associated event. The update is guarded on the current
	// status, which makes every lifecycle action single-shot under
	// concurrency: the second of two racing calls observes false.
	//
	// Returns (false, nil) when the deal is no longer in the from status.
	//
	// Possible errors:
	// - ErrDealNotFound
	// - ErrDatabaseConnection
	Transition(ctx context.Context, id int64, from, to entity.DealStatus, at time.Time) (bool, error)

	// ExpireInvite moves INVITE_CREATED to EXPIRED, guarded the same way as
	// Transition so lazy expiry on concurrent accesses happens exactly once
	ExpireInvite(ctx context.Context, id int64) (bool, error)

	// Release completes the deal as one atomic unit: DELIVERED -> RELEASED
	// with received_at and released_at stamped, and the seller's balance
	// credited with the full deal amount. The row lock on the deal
	// guarantees the credit happens exactly once.
	//
	// Possible errors:
	// - ErrDealNotFound
	// - ErrInvalidState: if the deal is not in DELIVERED
	// - ErrDatabaseConnection
	Release(ctx context.Context, id int64, at time.Time) (*entity.Deal, error)

	// ListByStatus returns deals in the given status, most recent first
	ListByStatus(ctx context.Context, status entity.DealStatus, limit int) ([]*entity.Deal, error)

	// ListRecent returns the latest deals regardless of status, most recent first
	ListRecent(ctx context.Context, limit int) ([]*entity.Deal, error)
}
