package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tweetpilot/internal/cron"
	"tweetpilot/internal/models"
	"tweetpilot/internal/repository"
)

// maxExecutionsPerUser caps how many recurring rules one user may register.
const maxExecutionsPerUser = 5

// ExecutionService owns the execution records and keeps the job registry
// in sync with them.
type ExecutionService struct {
	executions *repository.ExecutionRepository
	users      *repository.UserRepository
	registry   *cron.Registry
	poster     cron.TweetPoster
	logger     *zap.Logger
}

// NewExecutionService creates an execution service.
func NewExecutionService(
	executions *repository.ExecutionRepository,
	users *repository.UserRepository,
	registry *cron.Registry,
	poster cron.TweetPoster,
	logger *zap.Logger,
) *ExecutionService {
	return &ExecutionService{
		executions: executions,
		users:      users,
		registry:   registry,
		poster:     poster,
		logger:     logger,
	}
}

func validExecution(topic, executionTime string) bool {
	if len(topic) <= 2 || len(topic) > 30 {
		return false
	}
	return cron.ValidTime(executionTime)
}

// Save creates a new execution for the user and, when enabled, installs
// its job.
func (s *ExecutionService) Save(userID uint, execution *models.Execution) (*models.Execution, error) {
	if !validExecution(execution.Topic, execution.ExecutionTime) {
		return nil, ErrInvalidExecution
	}

	if _, err := s.users.Get(userID); err != nil {
		return nil, ErrUserNotFound
	}

	count, err := s.executions.CountForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("counting executions: %w", err)
	}
	if count >= maxExecutionsPerUser {
		return nil, ErrMaxExecutions
	}

	execution.UserID = userID
	saved, err := s.executions.Save(execution)
	if err != nil {
		return nil, fmt.Errorf("saving execution: %w", err)
	}

	if saved.Enabled {
		s.logger.Info("Scheduling execution",
			zap.Uint("execution_id", saved.ID),
			zap.String("execution_time", saved.ExecutionTime),
			zap.Uint("user_id", userID))
		action := cron.PostAction(s.poster, s.logger, saved.ID, userID, saved.Topic)
		if err := s.registry.Create(saved.ID, saved.ExecutionTime, action); err != nil {
			return nil, err
		}
	}

	return saved, nil
}

// Update replaces an execution owned by the user. Enabling (re)installs
// the job from the updated time and topic; disabling cancels it.
func (s *ExecutionService) Update(userID uint, execution *models.Execution) (*models.Execution, error) {
	if execution.ID == 0 || !validExecution(execution.Topic, execution.ExecutionTime) {
		return nil, ErrInvalidExecution
	}

	if _, err := s.users.Get(userID); err != nil {
		return nil, ErrUserNotFound
	}

	updated, err := s.executions.Update(userID, execution)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating execution: %w", err)
	}

	if updated.Enabled {
		s.logger.Info("Rescheduling execution",
			zap.Uint("execution_id", updated.ID),
			zap.String("execution_time", updated.ExecutionTime))
		action := cron.PostAction(s.poster, s.logger, updated.ID, userID, updated.Topic)
		if err := s.registry.Create(updated.ID, updated.ExecutionTime, action); err != nil {
			return nil, err
		}
	} else {
		s.logger.Info("Cancelling execution", zap.Uint("execution_id", updated.ID))
		s.registry.Cancel(updated.ID)
	}

	return updated, nil
}

// Delete removes an execution owned by the user and cancels its job. The
// bool reports whether a row existed.
func (s *ExecutionService) Delete(userID, executionID uint) (bool, error) {
	if _, err := s.users.Get(userID); err != nil {
		return false, ErrUserNotFound
	}

	deleted, err := s.executions.Delete(userID, executionID)
	if err != nil {
		return false, fmt.Errorf("deleting execution: %w", err)
	}

	if deleted {
		s.logger.Info("Cancelling execution", zap.Uint("execution_id", executionID))
		s.registry.Cancel(executionID)
	}

	return deleted, nil
}

// ListForUser returns the user's executions.
func (s *ExecutionService) ListForUser(userID uint) ([]models.Execution, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, ErrUserNotFound
	}
	return s.executions.ListForUser(userID)
}
