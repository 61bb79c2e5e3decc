package persistence

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// UserRepository stores Telegram accounts known to the bot
type UserRepository interface {
	// Upsert creates the user on first contact or refreshes handle and
	// last_seen_at on every subsequent one
	//
	// Possible errors:
	// - ErrDatabaseConnection: if the database is unreachable
	Upsert(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by Telegram id
	//
	// Possible errors:
	// - ErrUserNotFound: if no such user ever contacted the bot
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, telegramID int64) (*entity.User, error)

	// FindByHandle retrieves a user by normalized handle (lowercase, no "@")
	//
	// Possible errors:
	// - ErrUserNotFound: if no user carries the handle
	// - ErrDatabaseConnection: if the database is unreachable
	FindByHandle(ctx context.Context, handle string) (*entity.User, error)
}
