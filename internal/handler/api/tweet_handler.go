package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tweetpilot/internal/models"
	"tweetpilot/internal/service"
)

// TweetHandler serves the /api/tweet endpoints.
type TweetHandler struct {
	tweets *service.TweetService
	logger *zap.Logger
}

func NewTweetHandler(tweets *service.TweetService, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, logger: logger}
}

// Post handles POST /api/tweet: publish now, outside any schedule.
func (h *TweetHandler) Post(c echo.Context) error {
	var req models.TweetRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, service.ErrInvalidTopic)
	}

	embeds, err := h.tweets.PostWithEmbeds(c.Request().Context(), userID(c), req.Topic)
	if err != nil {
		h.logger.Error("Failed to post tweet", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"embeds": embeds})
}

// ListForUser handles GET /api/tweet/all/user.
func (h *TweetHandler) ListForUser(c echo.Context) error {
	embeds, err := h.tweets.EmbedsForUser(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list tweets for user", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"embeds": embeds})
}

// ListAll handles GET /api/tweet/all (public).
func (h *TweetHandler) ListAll(c echo.Context) error {
	embeds, err := h.tweets.Embeds(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list tweets", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"embeds": embeds})
}
