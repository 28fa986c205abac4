package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tweetpilot/internal/models"
	"tweetpilot/internal/twitter"
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

// stubGenerator counts calls and optionally always fails.
type stubGenerator struct {
	calls int
	fail  bool
}

func (g *stubGenerator) Generate(_ context.Context, topic string) (string, error) {
	g.calls++
	if g.fail {
		return "", errors.New("model unavailable")
	}
	return "a tweet about " + topic, nil
}

// stubPublisher fails the first failFirst PostTweet calls, then succeeds.
type stubPublisher struct {
	refreshCalls int
	postCalls    int
	failFirst    int
	tweetID      string
}

func (p *stubPublisher) RefreshToken(_ context.Context, _ string) (*twitter.TokenPair, error) {
	p.refreshCalls++
	return &twitter.TokenPair{AccessToken: "at2", RefreshToken: "rt2"}, nil
}

func (p *stubPublisher) PostTweet(_ context.Context, _, _ string) (string, error) {
	p.postCalls++
	if p.postCalls <= p.failFirst {
		return "", errors.New("twitter rejected the tweet")
	}
	if p.tweetID == "" {
		return "90001", nil
	}
	return p.tweetID, nil
}

// stubRenderer renders "<embed TWEETID>", reporting not-found or a hard
// failure for configured tweet ids.
type stubRenderer struct {
	calls    int
	notFound map[string]bool
	failing  map[string]bool
}

func (r *stubRenderer) Render(_ context.Context, _, tweetID string) (string, error) {
	r.calls++
	if r.notFound[tweetID] {
		return "", twitter.ErrTweetNotFound
	}
	if r.failing[tweetID] {
		return "", errors.New("embed api unavailable")
	}
	return "<embed " + tweetID + ">", nil
}
