package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tweetpilot/internal/models"
	"tweetpilot/internal/service"
)

// UserHandler serves the /api/user endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// LoginURL handles POST /api/user/login/url.
func (h *UserHandler) LoginURL(c echo.Context) error {
	url, err := h.users.LoginURL(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to build login URL", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// LoginCallback handles POST /api/user/login/callback.
func (h *UserHandler) LoginCallback(c echo.Context) error {
	var req models.LoginCallbackRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, service.ErrInvalidLogin)
	}

	token, err := h.users.LoginCallback(c.Request().Context(), req.Code, req.State)
	if err != nil {
		h.logger.Error("Login callback failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Validate handles GET /api/user/validate.
func (h *UserHandler) Validate(c echo.Context) error {
	user, err := h.users.Validate(userID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"userId": user.ID})
}
