package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"newsletter-go/internal/logging"
)

const migrationsTable = "schema_migrations"

// Migrate applies every pending goose migration found in dir.
func Migrate(ctx context.Context, db *sql.DB, dir string, logger *logging.ContextLogger) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	goose.SetLogger(&gooseLogger{logger: logger})
	goose.SetTableName(migrationsTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// gooseLogger routes goose output through logrus. Fatalf is downgraded to an
// error so a failed migration is returned to the caller instead of exiting.
type gooseLogger struct {
	logger *logging.ContextLogger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.WithField("component", "migrations").Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.WithField("component", "migrations").Info(fmt.Sprintf(format, v...))
}
