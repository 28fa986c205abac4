package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tweetpilot/internal/cron"
	"tweetpilot/internal/middleware"
	"tweetpilot/internal/service"
	"tweetpilot/internal/statestore"
)

// userID extracts the authenticated user id set by the JWT middleware.
func userID(c echo.Context) uint {
	id, _ := c.Get(middleware.UserIDKey).(uint)
	return id
}

func errorResponse(c echo.Context, err error) error {
	return c.JSON(statusFor(err), map[string]string{"message": err.Error()})
}

// statusFor maps service errors onto HTTP statuses. Unknown errors are
// internal; their detail stays in the logs.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidExecution),
		errors.Is(err, service.ErrInvalidTopic),
		errors.Is(err, service.ErrInvalidLogin),
		errors.Is(err, service.ErrMaxExecutions),
		errors.Is(err, cron.ErrInvalidTimeFormat),
		errors.Is(err, statestore.ErrStateNotFound):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExecutionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
