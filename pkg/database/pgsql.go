package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a PostgreSQL connection pool and retries the initial
// ping with exponential backoff for up to connectTimeout, so the service can
// start before the database is accepting connections.
func NewPgxPool(ctx context.Context, databaseURL string, connectTimeout time.Duration) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	expontentialBackoff := backoff.NewExponentialBackOff()
	expontentialBackoff.MaxInterval = 5 * time.Second
	expontentialBackoff.MaxElapsedTime = connectTimeout

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if pingErr := pool.Ping(ctx); pingErr != nil {
			slog.Warn("Database not reachable yet", slog.Int("attempt", attempt), slog.String("error", pingErr.Error()))
			return pingErr
		}
		return nil
	}, backoff.WithContext(expontentialBackoff, ctx))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
	}

	slog.Info("Successfully connected to PostgreSQL database.", slog.Int("attempts", attempt))
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}
