package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewMigrationProvider returns a goose provider over the embedded migrations for driver
func NewMigrationProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case DriverPostgres:
		dialect, dir = goose.DialectPostgres, MigrationsDirPostgres
	case DriverSQLite:
		dialect, dir = goose.DialectSQLite3, MigrationsDirSQLite
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, driver)
	}

	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}
	return provider, nil
}

// Migrate applies every pending migration for driver
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	provider, err := NewMigrationProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrationFailed, err)
	}

	if len(results) == 0 {
		slog.Default().Info(LogMsgMigrationsUpToDate, "driver", driver)
		return nil
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied,
			"driver", driver,
			"version", r.Source.Version,
			"duration", r.Duration)
	}
	return nil
}
