package model

import (
	"time"
)

// Admin represents the database model for delegated administrators.
// The owner is configuration and never stored here.
type Admin struct {
	UserID  int64     `gorm:"primaryKey;autoIncrement:false"`
	AddedBy int64     `gorm:"not null"`
	AddedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Admin
func (Admin) TableName() string {
	return "admins"
}
