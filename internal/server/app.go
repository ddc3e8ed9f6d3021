// Package server wires the sync backend together: configuration, storage
// (PostgreSQL, S3 or in-memory), services and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/casekeeper/internal/logging"
	"github.com/dmitrijs2005/casekeeper/internal/server/config"
	"github.com/dmitrijs2005/casekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/casekeeper/internal/server/repositories/snapshots"
	"github.com/dmitrijs2005/casekeeper/internal/server/services"
)

const (
	shutdownTimeout = 10 * time.Second
	s3Prefix        = "snapshots"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router *fiber.App
}

// NewApp validates cfg, connects storage and builds the HTTP router. Logs go
// to stdout as JSON.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	return newApp(ctx, cfg, logging.NewJSONLogger(os.Stdout, slog.LevelInfo))
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	var rm repomanager.RepositoryManager
	if cfg.DatabaseDSN == config.MemoryDSN {
		logger.Warn(ctx, "using in-memory storage, data is lost on restart")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db

		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migrations: %w", err)
		}
		rm = pm
	}

	ds, err := app.newDataService(ctx, rm)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	us := services.NewUserService(app.db, rm, cfg)

	app.router = httpapi.NewRouter(us, ds, logger)
	return app, nil
}

func (app *App) newDataService(ctx context.Context, rm repomanager.RepositoryManager) (*services.DataService, error) {
	if app.config.SnapshotBackend != config.BackendS3 {
		return services.NewDataService(app.db, rm), nil
	}

	client, err := snapshots.NewS3Client(ctx, snapshots.S3Options{
		User:         app.config.S3RootUser,
		Password:     app.config.S3RootPassword,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	app.logger.Info(ctx, "storing snapshots in S3", "bucket", app.config.S3Bucket)
	return services.NewDataServiceWithRepository(snapshots.NewS3Repository(client, app.config.S3Bucket, s3Prefix)), nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.ListenAddr)
		errCh <- app.router.Listen(app.config.ListenAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := app.router.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
