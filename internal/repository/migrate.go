package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/storefront/storefront/migrations"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

// gooseLogger forwards goose output to slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit; goose returns the error.
func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate applies the embedded schema migrations. Already-applied
// versions are skipped, so running it repeatedly is safe.
func (r *Repository) Migrate(ctx context.Context, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	// The pool keeps ownership of the connections.
	db := stdlib.OpenDBFromPool(r.pool)

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{logger: logger.With("component", "migrate")})
	goose.SetTableName(MigrationTableName)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
