// Package main applies the database schema migrations and exits.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.Error("failed to connect to database",
			"error", config.SanitizeError(err, cfg.DatabaseURL),
			"database_url", config.RedactURL(cfg.DatabaseURL),
		)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx, logger); err != nil {
		logger.Error("migration failed", "error", config.SanitizeError(err, cfg.DatabaseURL))
		repo.Close()
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
