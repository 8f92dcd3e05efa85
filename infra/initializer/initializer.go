package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/cache"
	"github.com/amirasaad/fintrack/infra/migrations"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/gofiber/fiber/v2"
)

// InitializeDependencies opens the database, applies migrations and picks
// the storage backend.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := migrations.Up(db); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database ready", "driver", db.Dialector.Name())

	deps.Uow = infra.NewUoW(db)

	deps.Storage, err = NewStorage(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	return deps, nil
}

// NewStorage returns Redis storage when a URL is configured and an
// in-process store otherwise.
func NewStorage(cfg *config.Redis, logger *slog.Logger) (fiber.Storage, error) {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Using in-memory storage")
		return cache.NewMemoryStorage(0), nil
	}
	s, err := cache.NewRedisStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis storage: %w", err)
	}
	logger.Info("Using Redis storage", "prefix", cfg.KeyPrefix)
	return s, nil
}
