package model

import (
	"time"
)

// Withdrawal represents the database model for withdrawal requests
type Withdrawal struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"not null;index"`
	Currency    string    `gorm:"not null;size:8"`
	AmountCents int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:32;index"`
	CreatedAt   time.Time `gorm:"not null"`
	ApprovedAt  *time.Time
}

// TableName specifies the table name for Withdrawal
func (Withdrawal) TableName() string {
	return "withdrawals"
}
