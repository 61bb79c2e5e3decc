package database

import (
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB, logger coreport.Logger) error {
	logger.Info("Running database migrations", nil)

	err := db.AutoMigrate(
		&model.User{},
		&model.Deal{},
		&model.Balance{},
		&model.Withdrawal{},
		&model.Admin{},
	)
	if err != nil {
		logger.Error("Database migration failed", map[string]any{"error": err.Error()})
		return err
	}

	logger.Info("Database migrations completed", nil)
	return nil
}
