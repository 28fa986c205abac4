package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"tweetpilot/internal/handler/api"
	"tweetpilot/internal/middleware"
	"tweetpilot/internal/service"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	users *service.UserService,
	executions *service.ExecutionService,
	tweets *service.TweetService,
	jwtSecret string,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	auth := middleware.JWTAuth(jwtSecret)

	userHandler := api.NewUserHandler(users, logger)
	executionHandler := api.NewExecutionHandler(executions, logger)
	tweetHandler := api.NewTweetHandler(tweets, logger)

	// Login flow (no auth)
	e.POST("/api/user/login/url", userHandler.LoginURL)
	e.POST("/api/user/login/callback", userHandler.LoginCallback)
	e.GET("/api/user/validate", userHandler.Validate, auth)

	// Executions (owner scoped)
	e.POST("/api/execution", executionHandler.Save, auth)
	e.PUT("/api/execution", executionHandler.Update, auth)
	e.DELETE("/api/execution/:id", executionHandler.Delete, auth)
	e.GET("/api/execution/all", executionHandler.List, auth)

	// Tweets
	e.POST("/api/tweet", tweetHandler.Post, auth)
	e.GET("/api/tweet/all/user", tweetHandler.ListForUser, auth)
	e.GET("/api/tweet/all", tweetHandler.ListAll)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
