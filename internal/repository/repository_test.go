package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/dukerupert/tantuka/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, "", fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := internal.RunMigrations(ctx, db, logger); err != nil {
		return nil, "", fmt.Errorf("internal.RunMigrations: %w", err)
	}

	return postgresContainer, connStr, nil
}
