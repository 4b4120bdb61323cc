// Package main is the entry point for the Personal Finance API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/infra/cache"
	"github.com/finance-tracker/personal-finance/internal/infra/db"
	"github.com/finance-tracker/personal-finance/internal/infra/dependency"
	"github.com/finance-tracker/personal-finance/internal/infra/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, logCloser := logger.New(&cfg.Log, cfg.Server.Environment)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("Starting Personal Finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	// The API keeps serving without the summary cache.
	var redisClient *redis.Client
	if client, err := cache.NewRedisClient(&cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, dashboard summaries will not be cached", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Redis:    redisClient,
		Logger:   log,
		DBHealth: database.HealthCheck,
	})
	if err != nil {
		return err
	}

	engine, err := injector.Router.Setup(cfg.Server.Environment)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var jobs sync.WaitGroup
	if cfg.Email.WorkerEnabled {
		jobs.Add(1)
		go func() {
			defer jobs.Done()
			injector.EmailWorker.Start(ctx)
		}()
	}
	jobs.Add(1)
	go func() {
		defer jobs.Done()
		injector.TokenCleanup.Start(ctx)
	}()
	jobs.Add(1)
	go func() {
		defer jobs.Done()
		injector.AuthRateLimiter.Start(ctx)
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		jobs.Wait()
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	jobs.Wait()

	slog.Info("Server exited properly")
	return nil
}
