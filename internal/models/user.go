package models

// User maps to the `users` table. One row per linked Twitter account.
type User struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID    string `gorm:"column:account_id;size:100;uniqueIndex" json:"account_id"`
	AccessToken  string `gorm:"column:access_token;type:text" json:"-"`
	RefreshToken string `gorm:"column:refresh_token;type:text" json:"-"`

	Executions []Execution `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tweets     []Tweet     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
