package persistence

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// AdminRepository stores the delegated admin set. The owner is configuration
// and never appears in these rows.
type AdminRepository interface {
	// Add inserts or refreshes an admin entry
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Add(ctx context.Context, admin *entity.Admin) error

	// Remove deletes the entry; removing an absent entry is a no-op
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Remove(ctx context.Context, userID int64) error

	// Exists reports membership in the admin set
	//
	// Possible errors:
	// - ErrDatabaseConnection
	Exists(ctx context.Context, userID int64) (bool, error)

	// List returns admins most recently added first, with handles joined in
	// from the users table where known
	List(ctx context.Context, limit int) ([]*entity.Admin, error)
}
