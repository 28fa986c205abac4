package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tweetpilot/internal/models"
	"tweetpilot/internal/repository"
)

type tweetFixture struct {
	db        *gorm.DB
	user      *models.User
	generator *stubGenerator
	publisher *stubPublisher
	renderer  *stubRenderer
	tweets    *repository.TweetRepository
	service   *TweetService
}

func newTweetFixture(t *testing.T) *tweetFixture {
	t.Helper()

	db := newTestDB(t)
	f := &tweetFixture{
		db:        db,
		user:      createTestUser(t, db, "acct1"),
		generator: &stubGenerator{},
		publisher: &stubPublisher{},
		renderer:  &stubRenderer{},
		tweets:    repository.NewTweetRepository(db),
	}
	f.service = NewTweetService(
		repository.NewUserRepository(db), f.tweets,
		f.generator, f.publisher, f.renderer, zap.NewNop())
	return f
}

func TestPostSuccess(t *testing.T) {
	f := newTweetFixture(t)

	tweet, err := f.service.Post(context.Background(), f.user.ID, "weather")
	require.NoError(t, err)
	assert.Equal(t, "90001", tweet.TweetID)
	assert.Equal(t, f.user.ID, tweet.UserID)
	assert.Equal(t, "acct1", tweet.User.AccountID)

	// Rotated tokens were stored before the retry loop.
	var user models.User
	require.NoError(t, f.db.First(&user, f.user.ID).Error)
	assert.Equal(t, "at2", user.AccessToken)
	assert.Equal(t, "rt2", user.RefreshToken)
}

func TestPostTopicValidation(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.user.ID, "ab")
	assert.ErrorIs(t, err, ErrInvalidTopic)

	_, err = f.service.Post(ctx, f.user.ID, strings.Repeat("x", 31))
	assert.ErrorIs(t, err, ErrInvalidTopic)

	_, err = f.service.Post(ctx, f.user.ID, "abc")
	assert.NoError(t, err)

	f.publisher.tweetID = "90002"
	_, err = f.service.Post(ctx, f.user.ID, strings.Repeat("x", 30))
	assert.NoError(t, err)
}

func TestPostUnknownUser(t *testing.T) {
	f := newTweetFixture(t)

	_, err := f.service.Post(context.Background(), 404, "weather")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, f.generator.calls)
}

func TestPostGeneratorAlwaysFails(t *testing.T) {
	f := newTweetFixture(t)
	f.generator.fail = true

	_, err := f.service.Post(context.Background(), f.user.ID, "weather")
	assert.ErrorIs(t, err, ErrPublishExhausted)

	// Six generation failures exhaust the shared budget; the publisher is
	// never reached.
	assert.Equal(t, 6, f.generator.calls)
	assert.Zero(t, f.publisher.postCalls)

	var count int64
	require.NoError(t, f.db.Model(&models.Tweet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostPublisherFailsThenSucceeds(t *testing.T) {
	f := newTweetFixture(t)
	f.publisher.failFirst = 3

	tweet, err := f.service.Post(context.Background(), f.user.ID, "weather")
	require.NoError(t, err)
	assert.Equal(t, "90001", tweet.TweetID)

	// Three publish failures, then success on the fourth round trip.
	assert.Equal(t, 4, f.generator.calls)
	assert.Equal(t, 4, f.publisher.postCalls)
}

func TestPostPublisherAlwaysFails(t *testing.T) {
	f := newTweetFixture(t)
	f.publisher.failFirst = 100

	_, err := f.service.Post(context.Background(), f.user.ID, "weather")
	assert.ErrorIs(t, err, ErrPublishExhausted)
	assert.Equal(t, 6, f.publisher.postCalls)
}

func TestPostDeduplicates(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	first, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)
	second, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.Tweet{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmbedsForUser(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)

	embeds, err := f.service.EmbedsForUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"<embed 90001>"}, embeds)
}

func TestEmbedsEmpty(t *testing.T) {
	f := newTweetFixture(t)

	embeds, err := f.service.Embeds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, embeds)
	assert.Zero(t, f.renderer.calls)
}

func TestEmbedsSelfHealing(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)
	f.renderer.notFound = map[string]bool{"90001": true}

	// The deleted tweet is pruned and the refetch comes back empty; no
	// error surfaces.
	embeds, err := f.service.EmbedsForUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, embeds)

	var count int64
	require.NoError(t, f.db.Model(&models.Tweet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEmbedsSelfHealingKeepsSurvivors(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)
	f.publisher.tweetID = "90002"
	_, err = f.service.Post(ctx, f.user.ID, "golang news")
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Tweet{}).Where("tweet_id = ?", "90002").
		Update("published_at", time.Now().Add(time.Minute)).Error)

	f.renderer.notFound = map[string]bool{"90002": true}

	embeds, err := f.service.EmbedsForUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"<embed 90001>"}, embeds)

	var count int64
	require.NoError(t, f.db.Model(&models.Tweet{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmbedsRenderFailure(t *testing.T) {
	f := newTweetFixture(t)
	ctx := context.Background()

	_, err := f.service.Post(ctx, f.user.ID, "weather")
	require.NoError(t, err)
	f.renderer.failing = map[string]bool{"90001": true}

	_, err = f.service.EmbedsForUser(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrRenderFailed)

	// A hard render failure must not prune anything.
	var count int64
	require.NoError(t, f.db.Model(&models.Tweet{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmbedsUnknownUser(t *testing.T) {
	f := newTweetFixture(t)

	_, err := f.service.EmbedsForUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostWithEmbeds(t *testing.T) {
	f := newTweetFixture(t)

	embeds, err := f.service.PostWithEmbeds(context.Background(), f.user.ID, "weather")
	require.NoError(t, err)
	assert.Equal(t, []string{"<embed 90001>"}, embeds)
}
