package repository

import (
	"errors"

	"gorm.io/gorm"

	"tweetpilot/internal/models"
)

// UserRepository handles `users` table access.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// SaveByAccountID upserts a user keyed by Twitter account id. On re-login
// the existing row keeps its primary key and only the tokens are replaced.
func (r *UserRepository) SaveByAccountID(user *models.User) (*models.User, error) {
	var existing models.User
	err := r.db.Where("account_id = ?", user.AccountID).First(&existing).Error
	if err == nil {
		existing.AccessToken = user.AccessToken
		existing.RefreshToken = user.RefreshToken
		if err := r.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateTokens replaces the OAuth token pair for an existing user.
func (r *UserRepository) UpdateTokens(id uint, accessToken, refreshToken string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *UserRepository) Get(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
