package dto

import (
	"time"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// WithdrawalResponse is the API view of a withdrawal request
type WithdrawalResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// NewWithdrawalResponse converts a withdrawal entity to its API view
func NewWithdrawalResponse(w *entity.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:         w.ID,
		UserID:     w.UserID,
		Amount:     entity.FormatAmount(w.AmountCents),
		Currency:   w.Currency.String(),
		Status:     string(w.Status),
		CreatedAt:  w.CreatedAt,
		ApprovedAt: w.ApprovedAt,
	}
}
