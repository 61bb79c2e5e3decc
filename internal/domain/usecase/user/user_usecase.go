package user

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/port/persistence"
)

// UserUseCase handles user registration and lookup
type UserUseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RegisterContact upserts the user on every inbound update: the row is
// created on first contact, and handle/last_seen_at refresh afterwards.
// Users are never deleted.
func (u *UserUseCase) RegisterContact(ctx context.Context, telegramID int64, handle string) error {
	user := entity.NewUser(telegramID, handle, u.timeProvider.Now())
	if err := u.userRepo.Upsert(ctx, user); err != nil {
		u.logger.Error("Failed to upsert user", map[string]any{
			"user_id": telegramID,
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

// GetUser retrieves a user by Telegram id
func (u *UserUseCase) GetUser(ctx context.Context, telegramID int64) (*entity.User, error) {
	return u.userRepo.GetByID(ctx, telegramID)
}
