package model

// Balance represents the database model for per-(user, currency) totals
type Balance struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Currency string `gorm:"primaryKey;size:8"`
	Cents    int64  `gorm:"not null;default:0"` // running total in cents
}

// TableName specifies the table name for Balance
func (Balance) TableName() string {
	return "balances"
}
