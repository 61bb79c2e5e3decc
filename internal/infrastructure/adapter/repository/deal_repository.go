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

// DealRepository implements persistence.DealRepository using GORM
type DealRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDealRepository creates a new DealRepository instance
func NewDealRepository(db *gorm.DB, logger coreport.Logger) *DealRepository {
	return &DealRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *DealRepository) entityToModel(deal *entity.Deal) model.Deal {
	return model.Deal{
		ID:          deal.ID,
		BuyerID:     deal.BuyerID,
		SellerID:    deal.SellerID,
		AmountCents: deal.AmountCents,
		Currency:    string(deal.Currency),
		Terms:       deal.Terms,
		Status:      string(deal.Status),
		InviteToken: deal.InviteToken,
		ExpiresAt:   deal.ExpiresAt,
		CreatedAt:   deal.CreatedAt,

		AcceptedAt:         deal.AcceptedAt,
		DeclinedAt:         deal.DeclinedAt,
		DepositConfirmedAt: deal.DepositConfirmedAt,
		DeliveredAt:        deal.DeliveredAt,
		ReceivedAt:         deal.ReceivedAt,
		ReleasedAt:         deal.ReleasedAt,
	}
}

func (r *DealRepository) modelToEntity(m *model.Deal) *entity.Deal {
	return &entity.Deal{
		ID:          m.ID,
		BuyerID:     m.BuyerID,
		SellerID:    m.SellerID,
		AmountCents: m.AmountCents,
		Currency:    entity.Currency(m.Currency),
		Terms:       m.Terms,
		Status:      entity.DealStatus(m.Status),
		InviteToken: m.InviteToken,
		ExpiresAt:   m.ExpiresAt,
		CreatedAt:   m.CreatedAt,

		AcceptedAt:         m.AcceptedAt,
		DeclinedAt:         m.DeclinedAt,
		DepositConfirmedAt: m.DepositConfirmedAt,
		DeliveredAt:        m.DeliveredAt,
		ReceivedAt:         m.ReceivedAt,
		ReleasedAt:         m.ReleasedAt,
	}
}

// Create persists a new deal and fills in its sequential id
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	dealModel := r.entityToModel(deal)

	result := r.db.WithContext(ctx).Create(&dealModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Invite token collision on deal create", map[string]any{
				"buyer_id": deal.BuyerID,
			})
		}
		r.logger.Error("Failed to create deal", map[string]any{
			"buyer_id":  deal.BuyerID,
			"seller_id": deal.SellerID,
			"error":     result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	deal.ID = dealModel.ID
	r.logger.Info("Deal created", map[string]any{
		"deal_id":   deal.ID,
		"buyer_id":  deal.BuyerID,
		"seller_id": deal.SellerID,
	})
	return nil
}

// GetByID retrieves a deal by id
func (r *DealRepository) GetByID(ctx context.Context, id int64) (*entity.Deal, error) {
	var dealModel model.Deal

	result := r.db.WithContext(ctx).First(&dealModel, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrDealNotFound
		}
		r.logger.Error("Failed to get deal", map[string]any{
			"deal_id": id,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&dealModel), nil
}

// GetByToken retrieves a deal by its invite token
func (r *DealRepository) GetByToken(ctx context.Context, token string) (*entity.Deal, error) {
	var dealModel model.Deal

	result := r.db.WithContext(ctx).First(&dealModel, "invite_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrDealNotFound
		}
		r.logger.Error("Failed to get deal by token", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&dealModel), nil
}

// Transition atomically moves the deal from one status to another and stamps
// the associated event. The update is guarded on the current status, so of
// two racing calls exactly one succeeds.
func (r *DealRepository) Transition(ctx context.Context, id int64, from, to entity.DealStatus, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status": string(to),
	}
	if event, ok := entity.EventForStatus(to); ok {
		updates[string(event)] = at
	}

	result := r.db.WithContext(ctx).Model(&model.Deal{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		r.logger.Error("Failed to transition deal", map[string]any{
			"deal_id": id,
			"from":    string(from),
			"to":      string(to),
			"error":   result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		// Either the deal is gone or it already left the from status
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Deal{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if count == 0 {
			return false, errs.ErrDealNotFound
		}
		return false, nil
	}

	r.logger.Info("Deal transitioned", map[string]any{
		"deal_id": id,
		"from":    string(from),
		"to":      string(to),
	})
	return true, nil
}

// ExpireInvite moves INVITE_CREATED to EXPIRED, guarded so lazy expiry on
// concurrent accesses happens exactly once
func (r *DealRepository) ExpireInvite(ctx context.Context, id int64) (bool, error) {
	return r.Transition(ctx, id, entity.StatusInviteCreated, entity.StatusExpired, time.Time{})
}

// Release completes the deal as one atomic unit: DELIVERED -> RELEASED with
// received_at and released_at stamped, and the seller's balance credited with
// the full deal amount. The row lock on the deal guarantees the credit
// happens exactly once.
func (r *DealRepository) Release(ctx context.Context, id int64, at time.Time) (*entity.Deal, error) {
	var released *entity.Deal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dealModel model.Deal

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dealModel, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrDealNotFound
			}
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
		}

		if dealModel.Status != string(entity.StatusDelivered) {
			return errs.ErrInvalidState
		}

		updates := map[string]interface{}{
			"status":      string(entity.StatusReleased),
			"received_at": at,
			"released_at": at,
		}
		if err := tx.Model(&dealModel).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		credit := model.Balance{
			UserID:   dealModel.SellerID,
			Currency: dealModel.Currency,
			Cents:    dealModel.AmountCents,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "currency"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"cents": gorm.Expr("balances.cents + EXCLUDED.cents")}),
		}).Create(&credit).Error
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		dealModel.Status = string(entity.StatusReleased)
		dealModel.ReceivedAt = &at
		dealModel.ReleasedAt = &at
		released = r.modelToEntity(&dealModel)
		return nil
	})
	if err != nil {
		if !errors.Is(err, errs.ErrDealNotFound) && !errors.Is(err, errs.ErrInvalidState) {
			r.logger.Error("Failed to release deal", map[string]any{
				"deal_id": id,
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	r.logger.Info("Deal released", map[string]any{
		"deal_id":   released.ID,
		"seller_id": released.SellerID,
		"amount":    released.AmountCents,
		"currency":  string(released.Currency),
	})
	return released, nil
}

// ListByStatus returns deals in the given status, most recent first
func (r *DealRepository) ListByStatus(ctx context.Context, status entity.DealStatus, limit int) ([]*entity.Deal, error) {
	var dealModels []model.Deal

	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Limit(limit).
		Find(&dealModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	deals := make([]*entity.Deal, 0, len(dealModels))
	for i := range dealModels {
		deals = append(deals, r.modelToEntity(&dealModels[i]))
	}
	return deals, nil
}

// ListRecent returns the latest deals regardless of status, most recent first
func (r *DealRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Deal, error) {
	var dealModels []model.Deal

	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&dealModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	deals := make([]*entity.Deal, 0, len(dealModels))
	for i := range dealModels {
		deals = append(deals, r.modelToEntity(&dealModels[i]))
	}
	return deals, nil
}
