package cron

import (
	"context"

	"go.uber.org/zap"

	"tweetpilot/internal/models"
)

// TweetPoster is the slice of the tweet service a fired job needs.
type TweetPoster interface {
	Post(ctx context.Context, userID uint, topic string) (*models.Tweet, error)
}

// ExecutionLister loads the executions to reconcile against.
type ExecutionLister interface {
	ListEnabled() ([]models.Execution, error)
}

// Reconciler rebuilds the in-memory job set from persisted executions at
// process startup.
type Reconciler struct {
	registry   *Registry
	executions ExecutionLister
	poster     TweetPoster
	logger     *zap.Logger
}

// NewReconciler creates a reconciler over the given registry and store.
func NewReconciler(registry *Registry, executions ExecutionLister, poster TweetPoster, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		registry:   registry,
		executions: executions,
		poster:     poster,
		logger:     logger,
	}
}

// Init installs one job per enabled execution. A store failure leaves the
// scheduler running with zero jobs; HTTP traffic can still install jobs
// afterwards, so a degraded start beats no start.
func (r *Reconciler) Init() {
	executions, err := r.executions.ListEnabled()
	if err != nil {
		r.logger.Error("Failed to load executions, scheduler starts empty", zap.Error(err))
		return
	}

	installed := 0
	for _, execution := range executions {
		action := PostAction(r.poster, r.logger, execution.ID, execution.UserID, execution.Topic)
		if err := r.registry.Create(execution.ID, execution.ExecutionTime, action); err != nil {
			r.logger.Error("Failed to schedule execution",
				zap.Uint("execution_id", execution.ID),
				zap.Error(err))
			continue
		}
		installed++
	}

	r.logger.Info("Scheduler initialized", zap.Int("jobs", installed))
}

// PostAction returns a job action that publishes a tweet for the captured
// user and topic. The user id and topic are copied at install time so a
// later update of the execution row cannot change what an in-flight job
// posts. Failures are logged; the job keeps its schedule.
func PostAction(poster TweetPoster, logger *zap.Logger, executionID, userID uint, topic string) func() {
	return func() {
		if _, err := poster.Post(context.Background(), userID, topic); err != nil {
			logger.Error("Scheduled tweet failed",
				zap.Uint("execution_id", executionID),
				zap.Uint("user_id", userID),
				zap.Error(err))
		}
	}
}
