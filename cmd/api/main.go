// Package main is the entry point for the FinPlan API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/infra/db"
	"github.com/finplan/backend/internal/infra/dependency"
	"github.com/finplan/backend/internal/integration/cache"
	"github.com/finplan/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting FinPlan API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	opts := dependency.Options{}

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running calculators only",
			"error", err,
		)
		opts.DBHealth = func() bool { return false }
	} else {
		// Run database migrations
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully", "dialect", database.Dialect())

		opts.DB = database.DB()
		opts.DBHealth = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Redis is optional
	if cfg.Redis.URL != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(connectCtx, cfg.Redis)
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable, calculator cache disabled", "error", err)
		} else {
			opts.Redis = client
			defer closeRedis(client)
		}
	}

	injector, err := dependency.NewInjector(cfg, opts)
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	engine := injector.Router.Setup(cfg.Server.Environment)

	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	injector.Start(backgroundCtx)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		slog.Error("Failed to close redis client", "error", err)
	}
}
