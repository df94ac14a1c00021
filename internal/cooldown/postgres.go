package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

// rowQuerier is satisfied by both the pool and an open transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresBackend struct {
	db     *pgxpool.Pool
	config Config
}

// NewPostgresService stores summon timestamps in user_cooldowns so they
// survive restarts and are shared between bot processes.
func NewPostgresService(db *pgxpool.Pool, config Config) Service {
	return &postgresBackend{db: db, config: config}
}

func (b *postgresBackend) CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error) {
	lastUsed, err := readLastUsed(ctx, b.db, userID, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}
	on, remaining := b.remaining(lastUsed, action)
	return on, remaining, nil
}

// EnforceCooldown rejects early on an unlocked read, then repeats the check
// under a transaction-scoped advisory lock before running fn. The lock is
// needed because no row exists for a user's first summon.
func (b *postgresBackend) EnforceCooldown(ctx context.Context, userID, action string, fn func() error) error {
	on, remaining, err := b.CheckCooldown(ctx, userID, action)
	if err != nil {
		return err
	}
	if on {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashUserAction(userID, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	lastUsed, err := readLastUsed(ctx, tx, userID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}
	if on, remaining := b.remaining(lastUsed, action); on {
		logger.FromContext(ctx).Debug(LogMsgRaceConditionDetected,
			"action", action, "userID", userID, "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	// fn failing leaves the rollback in place so no cooldown is recorded
	if err := fn(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, SQLUpsertCooldown, userID, action, b.config.clock().Now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCooldownEnforced, "action", action, "userID", userID)
	return nil
}

func (b *postgresBackend) ResetCooldown(ctx context.Context, userID, action string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, userID, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

func (b *postgresBackend) GetLastUsed(ctx context.Context, userID, action string) (*time.Time, error) {
	return readLastUsed(ctx, b.db, userID, action)
}

func (b *postgresBackend) remaining(lastUsed *time.Time, action string) (bool, time.Duration) {
	return remainingCooldown(b.config.clock().Now(), lastUsed, b.config.GetCooldownDuration(action))
}

// readLastUsed returns nil when the user has never performed action.
func readLastUsed(ctx context.Context, q rowQuerier, userID, action string) (*time.Time, error) {
	var lastUsed time.Time
	err := q.QueryRow(ctx, SQLSelectLastUsed, userID, action).Scan(&lastUsed)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return &lastUsed, nil
}

// hashUserAction derives a non-negative advisory lock key.
func hashUserAction(userID, action string) int64 {
	sum := sha256.Sum256([]byte(userID + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(sum[:8]) & HashMaskPositiveInt64)
}
