package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"tweetpilot/internal/models"
)

// Migrate brings the schema up to date for all application tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Execution{},
		&models.Tweet{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}
