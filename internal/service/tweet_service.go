package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tweetpilot/internal/models"
	"tweetpilot/internal/repository"
	"tweetpilot/internal/twitter"
)

// maxPublishFailures is the shared failure budget for one publish call.
// Generation and publication failures count against the same budget; the
// attempt after the budget is exceeded is never made. Inherited product
// policy, not a tuning knob.
const maxPublishFailures = 5

// ContentGenerator produces tweet text for a topic.
type ContentGenerator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// TweetPublisher is the slice of the Twitter client the pipeline needs.
type TweetPublisher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*twitter.TokenPair, error)
	PostTweet(ctx context.Context, accessToken, text string) (string, error)
}

// EmbedRenderer renders one published tweet into embeddable HTML. A
// deleted tweet is reported as twitter.ErrTweetNotFound.
type EmbedRenderer interface {
	Render(ctx context.Context, accountID, tweetID string) (string, error)
}

// TweetService generates, publishes and reads back tweets.
type TweetService struct {
	users     *repository.UserRepository
	tweets    *repository.TweetRepository
	generator ContentGenerator
	publisher TweetPublisher
	renderer  EmbedRenderer
	logger    *zap.Logger
}

// NewTweetService creates a tweet service.
func NewTweetService(
	users *repository.UserRepository,
	tweets *repository.TweetRepository,
	generator ContentGenerator,
	publisher TweetPublisher,
	renderer EmbedRenderer,
	logger *zap.Logger,
) *TweetService {
	return &TweetService{
		users:     users,
		tweets:    tweets,
		generator: generator,
		publisher: publisher,
		renderer:  renderer,
		logger:    logger,
	}
}

// Post generates a tweet for the topic, publishes it and records it.
// Generation and publication are retried against one shared failure
// budget; when the budget runs out the call fails with
// ErrPublishExhausted and nothing is recorded.
func (s *TweetService) Post(ctx context.Context, userID uint, topic string) (*models.Tweet, error) {
	if len(topic) <= 2 || len(topic) > 30 {
		return nil, ErrInvalidTopic
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	pair, err := s.publisher.RefreshToken(ctx, user.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing twitter token: %w", err)
	}
	if err := s.users.UpdateTokens(user.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("storing rotated tokens: %w", err)
	}

	var tweetID string
	failures := 0
	for {
		s.logger.Info("Generating tweet", zap.String("topic", topic))
		text, err := s.generator.Generate(ctx, topic)
		if err != nil {
			failures++
			s.logger.Warn("Tweet generation failed", zap.Int("failures", failures), zap.Error(err))
			if failures > maxPublishFailures {
				break
			}
			continue
		}

		s.logger.Info("Posting tweet", zap.Uint("user_id", user.ID))
		id, err := s.publisher.PostTweet(ctx, pair.AccessToken, text)
		if err != nil {
			failures++
			s.logger.Warn("Tweet publish failed", zap.Int("failures", failures), zap.Error(err))
			if failures > maxPublishFailures {
				break
			}
			continue
		}

		tweetID = id
		break
	}

	if tweetID == "" {
		return nil, ErrPublishExhausted
	}

	tweet, err := s.tweets.SaveDeduped(&models.Tweet{TweetID: tweetID, UserID: user.ID})
	if err != nil {
		s.logger.Error("Published tweet could not be recorded",
			zap.String("tweet_id", tweetID),
			zap.Error(err))
		return nil, ErrPersistenceFailed
	}
	tweet.User = *user

	return tweet, nil
}

// PostWithEmbeds runs Post and returns the caller's recent embeds,
// including the fresh tweet even if the store read races behind the write.
func (s *TweetService) PostWithEmbeds(ctx context.Context, userID uint, topic string) ([]string, error) {
	tweet, err := s.Post(ctx, userID, topic)
	if err != nil {
		return nil, err
	}
	return s.embeds(ctx, userID, tweet)
}

// EmbedsForUser returns the newest embeds for one user.
func (s *TweetService) EmbedsForUser(ctx context.Context, userID uint) ([]string, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, ErrUserNotFound
	}
	return s.embeds(ctx, userID, nil)
}

// Embeds returns the newest embeds across all users.
func (s *TweetService) Embeds(ctx context.Context) ([]string, error) {
	return s.embeds(ctx, 0, nil)
}

// embeds renders the recent tweets for the scope (userID 0 means all
// users). A tweet the renderer reports as deleted is pruned from the
// store and the whole fetch restarts; the loop converges because every
// restart shrinks the stored set by one row.
func (s *TweetService) embeds(ctx context.Context, userID uint, justPublished *models.Tweet) ([]string, error) {
	for {
		var (
			tweets []models.Tweet
			err    error
		)
		if userID != 0 {
			tweets, err = s.tweets.ListRecentForUser(userID)
		} else {
			tweets, err = s.tweets.ListRecent()
		}
		if err != nil {
			return nil, fmt.Errorf("loading tweets: %w", err)
		}

		if len(tweets) == 0 {
			if justPublished == nil {
				return []string{}, nil
			}
			// The read raced behind the write; render the fresh tweet
			// directly instead of returning nothing.
			s.logger.Warn("No stored tweets right after publishing",
				zap.String("tweet_id", justPublished.TweetID))
			html, err := s.render(ctx, justPublished)
			if err != nil {
				return nil, err
			}
			return []string{html}, nil
		}

		htmls := make([]string, 0, len(tweets))
		stale := false
		for i := range tweets {
			tweet := &tweets[i]
			html, err := s.render(ctx, tweet)
			if errors.Is(err, twitter.ErrTweetNotFound) {
				s.logger.Warn("Tweet deleted on Twitter, pruning",
					zap.Uint("id", tweet.ID),
					zap.String("tweet_id", tweet.TweetID))
				deleted, derr := s.tweets.Delete(tweet.ID)
				if derr != nil {
					return nil, fmt.Errorf("pruning stale tweet: %w", derr)
				}
				if !deleted {
					return nil, fmt.Errorf("stale tweet %d missing from store", tweet.ID)
				}
				stale = true
				break
			}
			if err != nil {
				return nil, err
			}
			htmls = append(htmls, html)
		}

		if stale {
			continue
		}
		return htmls, nil
	}
}

func (s *TweetService) render(ctx context.Context, tweet *models.Tweet) (string, error) {
	html, err := s.renderer.Render(ctx, tweet.User.AccountID, tweet.TweetID)
	if err != nil {
		if errors.Is(err, twitter.ErrTweetNotFound) {
			return "", err
		}
		s.logger.Error("Embed render failed",
			zap.String("tweet_id", tweet.TweetID),
			zap.Error(err))
		return "", ErrRenderFailed
	}
	return html, nil
}
