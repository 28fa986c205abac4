package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tweetpilot/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Execution{}, &models.Tweet{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, accountID string) *models.User {
	t.Helper()

	user := &models.User{AccountID: accountID, AccessToken: "at", RefreshToken: "rt"}
	require.NoError(t, db.Create(user).Error)
	return user
}
