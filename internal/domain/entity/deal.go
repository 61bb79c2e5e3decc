package entity

import (
	"strings"
	"time"

	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

// DealStatus is the closed set of lifecycle states a deal can be in.
// Transitions happen only through the table in allowedTransitions.
type DealStatus string

const (
	StatusInviteCreated    DealStatus = "INVITE_CREATED"
	StatusAwaitingDeposit  DealStatus = "AWAITING_DEPOSIT"
	StatusDepositConfirmed DealStatus = "DEPOSIT_CONFIRMED"
	StatusDelivered        DealStatus = "DELIVERED"
	StatusReleased         DealStatus = "RELEASED"
	StatusDeclined         DealStatus = "DECLINED"
	StatusExpired          DealStatus = "EXPIRED"
)

// MinTermsLength is the minimum length of the free-text deal terms
const MinTermsLength = 10

// InviteTTL is how long an invite stays acceptable after creation
const InviteTTL = 24 * time.Hour

var allowedTransitions = map[DealStatus][]DealStatus{
	StatusInviteCreated:    {StatusAwaitingDeposit, StatusDeclined, StatusExpired},
	StatusAwaitingDeposit:  {StatusDepositConfirmed},
	StatusDepositConfirmed: {StatusDelivered},
	StatusDelivered:        {StatusReleased},
}

// CanTransition reports whether the edge from -> to exists in the lifecycle
func CanTransition(from, to DealStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves the status
func (s DealStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Valid reports whether the status belongs to the lifecycle
func (s DealStatus) Valid() bool {
	switch s {
	case StatusInviteCreated, StatusAwaitingDeposit, StatusDepositConfirmed,
		StatusDelivered, StatusReleased, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

func (s DealStatus) String() string {
	return string(s)
}

// Deal is one escrow transaction between a buyer and a seller.
// Event timestamps are set once and never cleared, forming an
// append-only audit trail.
type Deal struct {
	ID          int64
	BuyerID     int64
	SellerID    int64
	AmountCents int64
	Currency    Currency
	Terms       string
	Status      DealStatus
	InviteToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time

	AcceptedAt         *time.Time
	DeclinedAt         *time.Time
	DepositConfirmedAt *time.Time
	DeliveredAt        *time.Time
	ReceivedAt         *time.Time
	ReleasedAt         *time.Time
}

// NewDeal validates the invite inputs and builds a deal in INVITE_CREATED
func NewDeal(buyerID, sellerID, amountCents int64, currency Currency, terms, inviteToken string, now time.Time) (*Deal, error) {
	if buyerID == sellerID {
		return nil, errs.ErrSelfDeal
	}
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !currency.Valid() {
		return nil, errs.ErrInvalidCurrency
	}
	if len(strings.TrimSpace(terms)) < MinTermsLength {
		return nil, errs.ErrTermsTooShort
	}

	return &Deal{
		BuyerID:     buyerID,
		SellerID:    sellerID,
		AmountCents: amountCents,
		Currency:    currency,
		Terms:       strings.TrimSpace(terms),
		Status:      StatusInviteCreated,
		InviteToken: inviteToken,
		ExpiresAt:   now.Add(InviteTTL),
		CreatedAt:   now,
	}, nil
}

// InviteExpired reports whether the invite deadline has passed while the
// deal is still waiting for the seller
func (d *Deal) InviteExpired(now time.Time) bool {
	return d.Status == StatusInviteCreated && now.After(d.ExpiresAt)
}

// Amount returns the deal amount with currency as a display string
func (d *Deal) Amount() string {
	return FormatMoney(d.AmountCents, d.Currency)
}
