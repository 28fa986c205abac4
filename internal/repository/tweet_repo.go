package repository

import (
	"errors"

	"gorm.io/gorm"

	"tweetpilot/internal/models"
)

// recentTweetLimit bounds how many tweets the embed endpoints read back.
const recentTweetLimit = 2

// TweetRepository handles `tweets` table access.
type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// SaveDeduped creates the tweet row unless one already exists for the same
// Twitter tweet id, in which case the existing row is returned unchanged.
func (r *TweetRepository) SaveDeduped(tweet *models.Tweet) (*models.Tweet, error) {
	var existing models.Tweet
	err := r.db.Where("tweet_id = ?", tweet.TweetID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// Delete removes a tweet row by local id. The bool reports whether a row
// was actually deleted.
func (r *TweetRepository) Delete(id uint) (bool, error) {
	var existing models.Tweet
	err := r.db.First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.db.Delete(&existing).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListRecentForUser returns the newest tweets for one user, owner preloaded.
func (r *TweetRepository) ListRecentForUser(userID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.Where("user_id = ?", userID).
		Order("published_at DESC").
		Limit(recentTweetLimit).
		Preload("User").
		Find(&tweets).Error
	return tweets, err
}

// ListRecent returns the newest tweets across all users, owner preloaded.
func (r *TweetRepository) ListRecent() ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.Order("published_at DESC").
		Limit(recentTweetLimit).
		Preload("User").
		Find(&tweets).Error
	return tweets, err
}
