package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsletter-go/internal/config"
)

const retryInterval = time.Second

// Connect opens a pool against settings.DatabaseName and pings it. Connection
// attempts are repeated ConnectRetries times so the service can start alongside
// the database container.
func Connect(ctx context.Context, settings config.DatabaseSettings) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(settings.ConnectionString().Expose())
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	if settings.MaxConns > 0 {
		poolConfig.MaxConns = settings.MaxConns
	}

	attempts := max(settings.ConnectRetries, 1)
	var lastErr error
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToConnect, ctx.Err())
			case <-time.After(time.Duration(i+1) * retryInterval):
			}
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}

// CreateDatabase creates settings.DatabaseName through the server's default
// database. Tests use it to get an isolated database per run.
func CreateDatabase(ctx context.Context, settings config.DatabaseSettings) error {
	conn, err := pgx.Connect(ctx, settings.ConnectionStringWithoutDB().Expose())
	if err != nil {
		return errors.Join(ErrFailedToCreateDatabase, err)
	}
	defer conn.Close(ctx)

	stmt := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{settings.DatabaseName}.Sanitize())
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return errors.Join(ErrFailedToCreateDatabase, err)
	}
	return nil
}
