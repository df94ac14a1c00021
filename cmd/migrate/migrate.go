package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/MathCatch_Go/internal/config"
	"github.com/osse101/MathCatch_Go/internal/database"
)

// openProvider connects to the configured database and wraps it in a goose provider.
// The returned func closes the connection.
func openProvider() (*goose.Provider, func(), error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, err
	}

	var (
		db      *sql.DB
		driver  string
		closeFn func()
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, nil, err
		}
		db, driver = stdlib.OpenDBFromPool(pool), database.DriverPostgres
		closeFn = func() {
			_ = db.Close()
			pool.Close()
		}
	case config.DriverSQLite:
		db, err = database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		driver = database.DriverSQLite
		closeFn = func() { _ = db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", cfg.DBDriver)
	}

	provider, err := database.NewMigrationProvider(db, driver)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return provider, closeFn, nil
}

// UpCommand applies every pending migration
type UpCommand struct{ out io.Writer }

func (c *UpCommand) Name() string        { return "up" }
func (c *UpCommand) Description() string { return "Apply all pending migrations" }

func (c *UpCommand) Run(ctx context.Context, _ []string) error {
	provider, closeFn, err := openProvider()
	if err != nil {
		return err
	}
	defer closeFn()

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printInfo(c.out, "schema is up to date")
		return nil
	}
	for _, r := range results {
		printSuccess(c.out, "applied %d %s (%s)", r.Source.Version, r.Source.Path, r.Duration)
	}
	return nil
}

// DownCommand rolls back the most recent migration
type DownCommand struct{ out io.Writer }

func (c *DownCommand) Name() string        { return "down" }
func (c *DownCommand) Description() string { return "Roll back the most recent migration" }

func (c *DownCommand) Run(ctx context.Context, _ []string) error {
	provider, closeFn, err := openProvider()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := provider.Down(ctx)
	if err != nil {
		return err
	}
	printSuccess(c.out, "rolled back %d %s", result.Source.Version, result.Source.Path)
	return nil
}

// StatusCommand lists every migration and whether it has been applied
type StatusCommand struct{ out io.Writer }

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Show applied and pending migrations" }

func (c *StatusCommand) Run(ctx context.Context, _ []string) error {
	provider, closeFn, err := openProvider()
	if err != nil {
		return err
	}
	defer closeFn()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		if s.State == goose.StateApplied {
			fmt.Fprintf(c.out, "  %-8s %5d  %s  %s\n", statusApplied, s.Source.Version, s.AppliedAt.Format(timestampLayout), s.Source.Path)
			continue
		}
		fmt.Fprintf(c.out, "  %-8s %5d  %s\n", statusPending, s.Source.Version, s.Source.Path)
	}
	return nil
}
