package cron

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Registry owns the live timers, at most one per execution id. The job
// map is never persisted; Reconciler rebuilds it from the database after
// a restart.
type Registry struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu   sync.Mutex
	jobs map[uint]cron.EntryID
}

// NewRegistry creates an empty registry on its own cron runner.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		jobs:   make(map[uint]cron.EntryID),
	}
}

// Start begins firing scheduled jobs.
func (r *Registry) Start() {
	r.cron.Start()
}

// Stop stops the cron runner; the returned context is done once all
// in-flight job actions have finished.
func (r *Registry) Stop() context.Context {
	return r.cron.Stop()
}

// Create installs a daily job for the execution id, retiring any existing
// job for the same id first so old and new can never fire together. An
// empty time only cancels. An invalid time leaves no job installed.
func (r *Registry) Create(id uint, executionTime string, action func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(id)

	if executionTime == "" {
		return nil
	}

	spec, err := ToCronSpec(executionTime)
	if err != nil {
		return err
	}

	entryID, err := r.cron.AddFunc(spec, action)
	if err != nil {
		return fmt.Errorf("installing job for execution %d: %w", id, err)
	}

	r.jobs[id] = entryID
	r.logger.Debug("Job scheduled",
		zap.Uint("execution_id", id),
		zap.String("execution_time", executionTime))
	return nil
}

// Cancel retires the job for the execution id. Cancelling an id without a
// job is a no-op.
func (r *Registry) Cancel(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(id)
}

// Len returns the number of live jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.jobs)
}

func (r *Registry) removeLocked(id uint) {
	if entryID, ok := r.jobs[id]; ok {
		r.cron.Remove(entryID)
		delete(r.jobs, id)
		r.logger.Debug("Job cancelled", zap.Uint("execution_id", id))
	}
}
