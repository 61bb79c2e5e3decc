package dto

import (
	"time"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// DealResponse is the API view of a deal
type DealResponse struct {
	ID        int64      `json:"id"`
	BuyerID   int64      `json:"buyerId"`
	SellerID  int64      `json:"sellerId"`
	Amount    string     `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

// NewDealResponse converts a deal entity to its API view. The invite token
// and terms are deliberately not exposed.
func NewDealResponse(deal *entity.Deal) DealResponse {
	return DealResponse{
		ID:         deal.ID,
		BuyerID:    deal.BuyerID,
		SellerID:   deal.SellerID,
		Amount:     entity.FormatAmount(deal.AmountCents),
		Currency:   deal.Currency.String(),
		Status:     deal.Status.String(),
		CreatedAt:  deal.CreatedAt,
		ExpiresAt:  deal.ExpiresAt,
		ReleasedAt: deal.ReleasedAt,
	}
}
