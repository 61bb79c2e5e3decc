package model

import (
	"time"
)

// Deal represents the database model for deals. Rows are append-only from
// the audit perspective: status moves along the lifecycle and the nullable
// timestamps are stamped once, but rows are never deleted.
type Deal struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	BuyerID     int64     `gorm:"not null;index"`
	SellerID    int64     `gorm:"not null;index"`
	AmountCents int64     `gorm:"not null"`
	Currency    string    `gorm:"not null;size:8"`
	Terms       string    `gorm:"not null;type:text"`
	Status      string    `gorm:"not null;size:32;index"`
	InviteToken string    `gorm:"uniqueIndex;not null;size:64"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`

	AcceptedAt         *time.Time
	DeclinedAt         *time.Time
	DepositConfirmedAt *time.Time
	DeliveredAt        *time.Time
	ReceivedAt         *time.Time
	ReleasedAt         *time.Time
}

// TableName specifies the table name for Deal
func (Deal) TableName() string {
	return "deals"
}
