package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) entityToModel(user *entity.User) model.User {
	m := model.User{
		TelegramID: user.TelegramID,
		CreatedAt:  user.CreatedAt,
		LastSeenAt: user.LastSeenAt,
	}
	if user.Handle != "" {
		handle := user.Handle
		m.Handle = &handle
	}
	return m
}

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	user := &entity.User{
		TelegramID: m.TelegramID,
		CreatedAt:  m.CreatedAt,
		LastSeenAt: m.LastSeenAt,
	}
	if m.Handle != nil {
		user.Handle = *m.Handle
	}
	return user
}

// Upsert creates the user on first contact or refreshes handle and
// last_seen_at on every subsequent one
func (r *UserRepository) Upsert(ctx context.Context, user *entity.User) error {
	userModel := r.entityToModel(user)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"handle", "last_seen_at"}),
	}).Create(&userModel)

	if result.Error != nil {
		r.logger.Error("Failed to upsert user", map[string]any{
			"telegram_id": user.TelegramID,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// GetByID retrieves a user by Telegram id
func (r *UserRepository) GetByID(ctx context.Context, telegramID int64) (*entity.User, error) {
	var userModel model.User

	result := r.db.WithContext(ctx).First(&userModel, "telegram_id = ?", telegramID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		r.logger.Error("Failed to get user", map[string]any{
			"telegram_id": telegramID,
			"error":       result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&userModel), nil
}

// FindByHandle retrieves a user by normalized handle
func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*entity.User, error) {
	var userModel model.User

	result := r.db.WithContext(ctx).
		Order("last_seen_at DESC").
		First(&userModel, "handle = ?", handle)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		r.logger.Error("Failed to find user by handle", map[string]any{
			"handle": handle,
			"error":  result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&userModel), nil
}
