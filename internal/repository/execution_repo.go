package repository

import (
	"errors"

	"gorm.io/gorm"

	"tweetpilot/internal/models"
)

// ExecutionRepository handles `executions` table access.
type ExecutionRepository struct {
	db *gorm.DB
}

func NewExecutionRepository(db *gorm.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// Save creates a new execution row.
func (r *ExecutionRepository) Save(execution *models.Execution) (*models.Execution, error) {
	if err := r.db.Create(execution).Error; err != nil {
		return nil, err
	}
	return execution, nil
}

// Update replaces an execution owned by userID. Returns
// gorm.ErrRecordNotFound if no such row exists for that owner.
func (r *ExecutionRepository) Update(userID uint, execution *models.Execution) (*models.Execution, error) {
	var existing models.Execution
	err := r.db.Where("id = ? AND user_id = ?", execution.ID, userID).First(&existing).Error
	if err != nil {
		return nil, err
	}

	execution.UserID = userID
	if err := r.db.Save(execution).Error; err != nil {
		return nil, err
	}
	return execution, nil
}

// Delete removes an execution owned by userID. The bool reports whether a
// row was actually deleted.
func (r *ExecutionRepository) Delete(userID, executionID uint) (bool, error) {
	var existing models.Execution
	err := r.db.Where("id = ? AND user_id = ?", executionID, userID).First(&existing).Error
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

// CountForUser returns the number of executions registered by a user.
func (r *ExecutionRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Execution{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListForUser returns all executions registered by a user.
func (r *ExecutionRepository) ListForUser(userID uint) ([]models.Execution, error) {
	var executions []models.Execution
	err := r.db.Where("user_id = ?", userID).Find(&executions).Error
	return executions, err
}

// ListEnabled returns every enabled execution across all users.
func (r *ExecutionRepository) ListEnabled() ([]models.Execution, error) {
	var executions []models.Execution
	err := r.db.Where("enabled = ?", true).Find(&executions).Error
	return executions, err
}
