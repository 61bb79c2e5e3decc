package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	TelegramID int64     `gorm:"primaryKey;autoIncrement:false"`
	Handle     *string   `gorm:"index;size:32"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
