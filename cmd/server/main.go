// Package main implements the entry point for the catalog API server,
// which manages a product catalog and its registered users.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/openshelf/catalog-api/internal/api"
	"github.com/openshelf/catalog-api/internal/config"
	"github.com/openshelf/catalog-api/internal/platform/logger"
	"github.com/openshelf/catalog-api/internal/platform/postgres"
	"github.com/openshelf/catalog-api/internal/service"
	"github.com/openshelf/catalog-api/migrations"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start catalog-api: %v", err)
	}
}

// run wires configuration, logging, the database, and the HTTP server,
// then blocks until shutdown completes.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	// Establish the database connection and apply migrations
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Wire stores, services, and handlers
	productStore := postgres.NewPostgresProductStore(db, appLogger)
	userStore := postgres.NewPostgresUserStore(db, appLogger)

	productService, err := service.NewProductService(productStore, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create product service: %w", err)
	}

	userService, err := service.NewUserService(userStore, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	productHandler := api.NewProductHandler(productService, appLogger)
	userHandler := api.NewUserHandler(userService, appLogger)
	router := api.NewRouter(productHandler, userHandler, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-stop:
		appLogger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
