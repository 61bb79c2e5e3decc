package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithdrawalRepository implements persistence.WithdrawalRepository using GORM
type WithdrawalRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewWithdrawalRepository creates a new WithdrawalRepository instance
func NewWithdrawalRepository(db *gorm.DB, logger coreport.Logger) *WithdrawalRepository {
	return &WithdrawalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WithdrawalRepository) modelToEntity(m *model.Withdrawal) *entity.Withdrawal {
	return &entity.Withdrawal{
		ID:          m.ID,
		UserID:      m.UserID,
		Currency:    entity.Currency(m.Currency),
		AmountCents: m.AmountCents,
		Status:      entity.WithdrawalStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ApprovedAt:  m.ApprovedAt,
	}
}

// Create persists a new request in REQUESTED and fills in its id
func (r *WithdrawalRepository) Create(ctx context.Context, w *entity.Withdrawal) error {
	withdrawalModel := model.Withdrawal{
		UserID:      w.UserID,
		Currency:    string(w.Currency),
		AmountCents: w.AmountCents,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&withdrawalModel)
	if result.Error != nil {
		r.logger.Error("Failed to create withdrawal", map[string]any{
			"user_id": w.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	w.ID = withdrawalModel.ID
	r.logger.Info("Withdrawal requested", map[string]any{
		"withdrawal_id": w.ID,
		"user_id":       w.UserID,
		"currency":      string(w.Currency),
		"cents":         w.AmountCents,
	})
	return nil
}

// GetByID retrieves a withdrawal by id
func (r *WithdrawalRepository) GetByID(ctx context.Context, id int64) (*entity.Withdrawal, error) {
	var withdrawalModel model.Withdrawal

	result := r.db.WithContext(ctx).First(&withdrawalModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWithdrawalNotFound
		}
		r.logger.Error("Failed to get withdrawal", map[string]any{
			"withdrawal_id": id,
			"error":         result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&withdrawalModel), nil
}

// Approve performs the whole approval as one atomic unit: lock the request,
// verify it is still REQUESTED, lock the balance, verify funds, debit, flip
// to APPROVED, stamp approved_at. A concurrent second approval observes the
// flipped status and is rejected.
func (r *WithdrawalRepository) Approve(ctx context.Context, id int64, at time.Time) (*entity.Withdrawal, error) {
	var approved *entity.Withdrawal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var withdrawalModel model.Withdrawal

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&withdrawalModel, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrWithdrawalNotFound
			}
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
		}

		if withdrawalModel.Status != string(entity.WithdrawalRequested) {
			return errs.ErrWithdrawalNotFound
		}

		var balanceModel model.Balance
		result = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&balanceModel, "user_id = ? AND currency = ?", withdrawalModel.UserID, withdrawalModel.Currency)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
		}

		if balanceModel.Cents < withdrawalModel.AmountCents {
			return errs.NewInsufficientBalanceError(
				withdrawalModel.UserID,
				withdrawalModel.Currency,
				entity.FormatAmount(withdrawalModel.AmountCents),
				entity.FormatAmount(balanceModel.Cents),
			)
		}

		err := tx.Model(&model.Balance{}).
			Where("user_id = ? AND currency = ?", withdrawalModel.UserID, withdrawalModel.Currency).
			Update("cents", gorm.Expr("cents - ?", withdrawalModel.AmountCents)).Error
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		updates := map[string]interface{}{
			"status":      string(entity.WithdrawalApproved),
			"approved_at": at,
		}
		if err := tx.Model(&withdrawalModel).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		withdrawalModel.Status = string(entity.WithdrawalApproved)
		withdrawalModel.ApprovedAt = &at
		approved = r.modelToEntity(&withdrawalModel)
		return nil
	})
	if err != nil {
		if !errors.Is(err, errs.ErrWithdrawalNotFound) && !errors.Is(err, errs.ErrInsufficientBalance) {
			r.logger.Error("Failed to approve withdrawal", map[string]any{
				"withdrawal_id": id,
				"error":         err.Error(),
			})
		}
		return nil, err
	}

	r.logger.Info("Withdrawal approved", map[string]any{
		"withdrawal_id": approved.ID,
		"user_id":       approved.UserID,
		"currency":      string(approved.Currency),
		"cents":         approved.AmountCents,
	})
	return approved, nil
}

// ListByStatus returns requests in the given status, most recent first
func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status entity.WithdrawalStatus, limit int) ([]*entity.Withdrawal, error) {
	var withdrawalModels []model.Withdrawal

	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Limit(limit).
		Find(&withdrawalModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	withdrawals := make([]*entity.Withdrawal, 0, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals = append(withdrawals, r.modelToEntity(&withdrawalModels[i]))
	}
	return withdrawals, nil
}
