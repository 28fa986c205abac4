package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tweetpilot/internal/bootstrap"
	"tweetpilot/internal/config"
	cronpkg "tweetpilot/internal/cron"
	"tweetpilot/internal/generator"
	"tweetpilot/internal/repository"
	"tweetpilot/internal/router"
	"tweetpilot/internal/service"
	"tweetpilot/internal/statestore"
	"tweetpilot/internal/twitter"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// --- OAuth state store (Redis with in-memory fallback) ---
	states, stateErr := statestore.New(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, 10*time.Minute)
	if stateErr != nil {
		logger.Warn("Redis unavailable for login state, using in-memory fallback", zap.Error(stateErr))
	}

	// --- External clients ---
	twitterClient := twitter.NewClient(&cfg.Twitter)
	embedClient := twitter.NewEmbedClient(cfg.Twitter.EmbedAPIURL)
	contentGenerator := generator.New(&cfg.OpenAI)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	executionRepo := repository.NewExecutionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	// --- Services ---
	tweetService := service.NewTweetService(userRepo, tweetRepo, contentGenerator, twitterClient, embedClient, logger)
	registry := cronpkg.NewRegistry(logger)
	executionService := service.NewExecutionService(executionRepo, userRepo, registry, tweetService, logger)
	userService := service.NewUserService(userRepo, states, twitterClient, cfg.JWT.Secret, cfg.JWT.Expiry, logger)

	// --- Scheduler ---
	reconciler := cronpkg.NewReconciler(registry, executionRepo, tweetService, logger)
	reconciler.Init()
	registry.Start()

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true
	router.Setup(e, userService, executionService, tweetService, cfg.JWT.Secret, logger)

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting tweetpilot server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop scheduler and wait for in-flight jobs
	ctx := registry.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
