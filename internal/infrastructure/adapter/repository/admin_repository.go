package repository

import (
	"context"
	"fmt"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminRepository implements persistence.AdminRepository using GORM
type AdminRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdminRepository creates a new AdminRepository instance
func NewAdminRepository(db *gorm.DB, logger coreport.Logger) *AdminRepository {
	return &AdminRepository{
		db:     db,
		logger: logger,
	}
}

// Add inserts or refreshes an admin entry
func (r *AdminRepository) Add(ctx context.Context, admin *entity.Admin) error {
	adminModel := model.Admin{
		UserID:  admin.UserID,
		AddedBy: admin.AddedBy,
		AddedAt: admin.AddedAt,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"added_by", "added_at"}),
	}).Create(&adminModel)

	if result.Error != nil {
		r.logger.Error("Failed to add admin", map[string]any{
			"user_id": admin.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Info("Admin added", map[string]any{
		"user_id":  admin.UserID,
		"added_by": admin.AddedBy,
	})
	return nil
}

// Remove deletes the entry; removing an absent entry is a no-op
func (r *AdminRepository) Remove(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Admin{}, "user_id = ?", userID)
	if result.Error != nil {
		r.logger.Error("Failed to remove admin", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Admin removed", map[string]any{"user_id": userID})
	}
	return nil
}

// Exists reports membership in the admin set
func (r *AdminRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return count > 0, nil
}

// List returns admins most recently added first, with handles joined in from
// the users table where known
func (r *AdminRepository) List(ctx context.Context, limit int) ([]*entity.Admin, error) {
	var rows []struct {
		model.Admin
		Handle *string
	}

	result := r.db.WithContext(ctx).Model(&model.Admin{}).
		Select("admins.*, users.handle").
		Joins("LEFT JOIN users ON users.telegram_id = admins.user_id").
		Order("admins.added_at DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	admins := make([]*entity.Admin, 0, len(rows))
	for _, row := range rows {
		admin := &entity.Admin{
			UserID:  row.UserID,
			AddedBy: row.AddedBy,
			AddedAt: row.AddedAt,
		}
		if row.Handle != nil {
			admin.Handle = *row.Handle
		}
		admins = append(admins, admin)
	}
	return admins, nil
}
