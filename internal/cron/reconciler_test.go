package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tweetpilot/internal/models"
)

type fakeLister struct {
	executions []models.Execution
	err        error
}

func (f *fakeLister) ListEnabled() ([]models.Execution, error) {
	return f.executions, f.err
}

type fakePoster struct {
	calls  []postCall
	err    error
	result *models.Tweet
}

type postCall struct {
	userID uint
	topic  string
}

func (f *fakePoster) Post(_ context.Context, userID uint, topic string) (*models.Tweet, error) {
	f.calls = append(f.calls, postCall{userID: userID, topic: topic})
	return f.result, f.err
}

func TestReconcilerInit(t *testing.T) {
	registry := newTestRegistry(t)
	lister := &fakeLister{executions: []models.Execution{
		{ID: 7, ExecutionTime: "09:30", Topic: "weather", UserID: 1, Enabled: true},
		{ID: 8, ExecutionTime: "18:00", Topic: "golang", UserID: 2, Enabled: true},
	}}

	NewReconciler(registry, lister, &fakePoster{}, zap.NewNop()).Init()

	assert.Equal(t, 2, registry.Len())
}

func TestReconcilerInitStoreFailure(t *testing.T) {
	registry := newTestRegistry(t)
	lister := &fakeLister{err: errors.New("connection refused")}

	// Degraded start: no panic, no jobs.
	NewReconciler(registry, lister, &fakePoster{}, zap.NewNop()).Init()

	assert.Equal(t, 0, registry.Len())
}

func TestReconcilerInitSkipsBrokenRecords(t *testing.T) {
	registry := newTestRegistry(t)
	lister := &fakeLister{executions: []models.Execution{
		{ID: 7, ExecutionTime: "not-a-time", Topic: "weather", UserID: 1, Enabled: true},
		{ID: 8, ExecutionTime: "18:00", Topic: "golang", UserID: 2, Enabled: true},
	}}

	NewReconciler(registry, lister, &fakePoster{}, zap.NewNop()).Init()

	assert.Equal(t, 1, registry.Len())
}

func TestPostActionInvokesPosterOnce(t *testing.T) {
	poster := &fakePoster{}
	action := PostAction(poster, zap.NewNop(), 7, 42, "weather")

	action()

	require.Len(t, poster.calls, 1)
	assert.Equal(t, uint(42), poster.calls[0].userID)
	assert.Equal(t, "weather", poster.calls[0].topic)
}

func TestPostActionSwallowsFailures(t *testing.T) {
	poster := &fakePoster{err: errors.New("twitter down")}
	action := PostAction(poster, zap.NewNop(), 7, 42, "weather")

	// A failed run must not panic; the job keeps its schedule.
	action()
	action()

	assert.Len(t, poster.calls, 2)
}

func TestPostActionCapturesSnapshot(t *testing.T) {
	poster := &fakePoster{}
	topic := "weather"
	action := PostAction(poster, zap.NewNop(), 7, 42, topic)

	// Mutating the source string after install must not change what the
	// job posts.
	topic = "politics"
	_ = topic
	action()

	require.Len(t, poster.calls, 1)
	assert.Equal(t, "weather", poster.calls[0].topic)
}
