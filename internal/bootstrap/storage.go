package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/MathCatch_Go/internal/config"
	"github.com/osse101/MathCatch_Go/internal/cooldown"
	"github.com/osse101/MathCatch_Go/internal/database"
	"github.com/osse101/MathCatch_Go/internal/database/postgres"
	"github.com/osse101/MathCatch_Go/internal/database/sqlite"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// Storage holds the repositories for the configured driver.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Storage struct {
	Driver    string
	Pool      database.Pool
	Rules     repository.SpawnRule
	Inventory repository.Inventory
	Roles     repository.Role
	Cooldowns cooldown.Service
}

// Close releases the underlying connections
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenStorage connects to the configured driver, applies migrations when enabled
// and builds the repositories. Postgres also backs the summon cooldown so it survives
// restarts and is shared between replicas; sqlite deployments are single-process and use memory.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	cdConfig := cooldown.Config{Cooldowns: map[string]time.Duration{cooldown.ActionSummon: cfg.SummonCooldown}}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenPostgres, err)
		}
		if err := migrate(ctx, cfg, stdlib.OpenDBFromPool(pool), database.DriverPostgres); err != nil {
			pool.Close()
			return nil, err
		}
		slog.Info(LogMsgStorageOpened, "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return postgresStorage(pool, cdConfig), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenSQLite, err)
		}
		if err := migrate(ctx, cfg, db, database.DriverSQLite); err != nil {
			_ = db.Close()
			return nil, err
		}
		slog.Info(LogMsgStorageOpened, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		store := sqlite.NewStore(db)
		return &Storage{
			Driver:    config.DriverSQLite,
			Pool:      database.SQLPinger{DB: db},
			Rules:     store,
			Inventory: store,
			Roles:     store,
			Cooldowns: cooldown.NewMemoryService(cdConfig),
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.DBDriver)
	}
}

func postgresStorage(pool *pgxpool.Pool, cdConfig cooldown.Config) *Storage {
	return &Storage{
		Driver:    config.DriverPostgres,
		Pool:      pool,
		Rules:     postgres.NewSpawnRuleRepository(pool),
		Inventory: postgres.NewInventoryRepository(pool),
		Roles:     postgres.NewRoleRepository(pool),
		Cooldowns: cooldown.NewPostgresService(pool, cdConfig),
	}
}

// migrate applies embedded migrations when MIGRATE_ON_STARTUP is set
func migrate(ctx context.Context, cfg *config.Config, db *sql.DB, driver string) error {
	if !cfg.MigrateOnStartup {
		slog.Info(LogMsgMigrationsSkipped)
		return nil
	}
	if err := database.Migrate(ctx, db, driver); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrate, err)
	}
	return nil
}
