package main

import (
	"context"
	"fmt"

	dapr "github.com/dapr/go-sdk/client"
	"github.com/jackc/pgx/v5/stdlib"

	"newsletter-go/internal/config"
	"newsletter-go/internal/database"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/repository"
)

// openRepository builds the subscription store selected by storage.backend.
// The returned func releases its connections.
func openRepository(ctx context.Context, settings *config.Settings, logger *logging.ContextLogger, migrate bool) (repository.SubscriptionRepository, func(), error) {
	switch settings.Storage.Backend {
	case config.StorageBackendMemory:
		logger.Warn("Using in-memory storage, subscriptions are lost on restart")
		return repository.NewInMemorySubscriptionRepository(), func() {}, nil

	case config.StorageBackendDapr:
		client, err := dapr.NewClient()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create dapr client: %w", err)
		}
		return repository.NewDaprSubscriptionRepository(client, settings.Storage.DaprStoreName), client.Close, nil

	default:
		pool, err := database.Connect(ctx, settings.Database)
		if err != nil {
			return nil, nil, err
		}
		db := stdlib.OpenDBFromPool(pool)

		if migrate {
			if err := database.Migrate(ctx, db, settings.Database.MigrationsPath, logger); err != nil {
				db.Close()
				pool.Close()
				return nil, nil, err
			}
		}

		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.WithError(err).Error("Failed to close database handle")
			}
			pool.Close()
		}
		return repository.NewPostgresSubscriptionRepository(db), closeFn, nil
	}
}
