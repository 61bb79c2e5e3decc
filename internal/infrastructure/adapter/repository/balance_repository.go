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

// BalanceRepository implements persistence.BalanceRepository using GORM
type BalanceRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewBalanceRepository creates a new BalanceRepository instance
func NewBalanceRepository(db *gorm.DB, logger coreport.Logger) *BalanceRepository {
	return &BalanceRepository{
		db:     db,
		logger: logger,
	}
}

// Credit lazily creates the balance row at zero and adds the given cents as
// one atomic increment
func (r *BalanceRepository) Credit(ctx context.Context, userID int64, currency entity.Currency, cents int64) error {
	balanceModel := model.Balance{
		UserID:   userID,
		Currency: string(currency),
		Cents:    cents,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"cents": gorm.Expr("balances.cents + EXCLUDED.cents")}),
	}).Create(&balanceModel)

	if result.Error != nil {
		r.logger.Error("Failed to credit balance", map[string]any{
			"user_id":  userID,
			"currency": string(currency),
			"cents":    cents,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Info("Balance credited", map[string]any{
		"user_id":  userID,
		"currency": string(currency),
		"cents":    cents,
	})
	return nil
}

// Get returns the balance, a zero-valued row when none exists yet
func (r *BalanceRepository) Get(ctx context.Context, userID int64, currency entity.Currency) (*entity.Balance, error) {
	var balanceModel model.Balance

	result := r.db.WithContext(ctx).
		First(&balanceModel, "user_id = ? AND currency = ?", userID, string(currency))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &entity.Balance{UserID: userID, Currency: currency, Cents: 0}, nil
		}
		r.logger.Error("Failed to get balance", map[string]any{
			"user_id":  userID,
			"currency": string(currency),
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return &entity.Balance{
		UserID:   balanceModel.UserID,
		Currency: entity.Currency(balanceModel.Currency),
		Cents:    balanceModel.Cents,
	}, nil
}
