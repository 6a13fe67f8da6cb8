package internal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/dukerupert/tantuka/migrations"
)

// RunMigrations applies every pending migration in migrations/ and logs each
// one that ran. It returns the schema version the database ends on.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) (int64, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.MigrationsFS)
	if err != nil {
		return 0, fmt.Errorf("goose.NewProvider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("provider.Up: %w", err)
	}

	for _, res := range results {
		logger.Info("Applied migration",
			"version", res.Source.Version,
			"file", res.Source.Path,
			"duration", res.Duration,
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("provider.GetDBVersion: %w", err)
	}
	return version, nil
}
