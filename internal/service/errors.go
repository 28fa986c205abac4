package service

import "errors"

// Errors surfaced to the API layer. Handlers map these to HTTP statuses;
// anything else is reported as an internal error.
var (
	ErrInvalidExecution  = errors.New("execution properties not valid")
	ErrMaxExecutions     = errors.New("maximum number of executions reached")
	ErrExecutionNotFound = errors.New("execution not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTopic      = errors.New("topic is missing or in wrong format")
	ErrInvalidLogin      = errors.New("code or state not provided")

	// ErrPublishExhausted means the generate/publish retry budget ran out
	// without a successful publish.
	ErrPublishExhausted = errors.New("could not post tweet")

	// ErrPersistenceFailed means the tweet went out to Twitter but could
	// not be recorded locally. The remote tweet is not retracted.
	ErrPersistenceFailed = errors.New("could not save tweet")

	// ErrRenderFailed is any embed renderer failure other than the
	// tweet-deleted signal.
	ErrRenderFailed = errors.New("could not render tweet embed")
)
