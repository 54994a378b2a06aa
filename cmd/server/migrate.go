package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"newsletter-go/internal/config"
	"newsletter-go/internal/database"
	"newsletter-go/internal/logging"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configDir)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			logger := logging.NewLogger(settings.Application.LogLevel)

			pool, err := database.Connect(cmd.Context(), settings.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db, settings.Database.MigrationsPath, logger); err != nil {
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	}
}
