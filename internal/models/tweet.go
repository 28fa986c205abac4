package models

import "time"

// Tweet maps to the `tweets` table. One row per successfully published
// tweet, unique per Twitter-assigned tweet id.
type Tweet struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TweetID     string    `gorm:"column:tweet_id;size:100;uniqueIndex" json:"tweetId"`
	PublishedAt time.Time `gorm:"column:published_at;autoCreateTime" json:"publishedAt"`
	UserID      uint      `gorm:"column:user_id;index" json:"userId"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Tweet) TableName() string {
	return "tweets"
}
