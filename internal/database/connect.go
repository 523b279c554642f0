package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/pokedex-ingest/internal/logging"
)

// ConnectConfig controls the connection retry loop.
type ConnectConfig struct {
	URL      string
	Attempts int           // total attempts, at least 1
	Delay    time.Duration // fixed delay between attempts
	Timeout  time.Duration // per-attempt connect timeout, 0 for none
}

// dialFunc opens one connection; swapped in tests.
type dialFunc func(ctx context.Context, cfg *pgx.ConnConfig) (*pgx.Conn, error)

// Connect opens the destination connection, retrying a bounded number of
// times with a constant delay. A malformed URL is not retried.
func Connect(ctx context.Context, cfg ConnectConfig) (*Conn, error) {
	return connect(ctx, cfg, pgx.ConnectConfig)
}

func connect(ctx context.Context, cfg ConnectConfig, dial dialFunc) (*Conn, error) {
	pgCfg, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.Timeout > 0 {
		pgCfg.ConnectTimeout = cfg.Timeout
	}

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	logger := logging.FromContext(ctx)

	var bo backoff.BackOff = backoff.NewConstantBackOff(cfg.Delay)
	bo = backoff.WithMaxRetries(bo, uint64(attempts-1))
	bo = backoff.WithContext(bo, ctx)

	attempt := 0
	var conn *pgx.Conn
	op := func() error {
		attempt++
		logger.Info("connecting to database", "attempt", attempt, "max_attempts", attempts)

		c, err := dial(ctx, pgCfg)
		if err != nil {
			return MapError(err)
		}
		conn = c
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("could not connect to database",
			slog.Duration("retry_in", next),
			slog.Any("error", err),
		)
	}

	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("connect: %w", errors.Join(ctxErr, err))
		}
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrConnectExhausted, attempts, err)
	}

	return &Conn{conn: conn}, nil
}
