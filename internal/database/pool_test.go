package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/testing/leaktest"
)

func TestNewPool(t *testing.T) {
	t.Run("rejects malformed dsn", func(t *testing.T) {
		_, err := NewPool("postgres://%zz", 4, time.Minute, time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
	})

	t.Run("min conns never exceed max", func(t *testing.T) {
		dsn := requirePostgres(t)
		pool, err := NewPool(dsn, 1, time.Minute, 5*time.Minute)
		require.NoError(t, err)
		defer pool.Close()

		cfg := pool.Config()
		assert.Equal(t, int32(1), cfg.MaxConns)
		assert.LessOrEqual(t, cfg.MinConns, cfg.MaxConns)
	})
}

func TestPool_ExhaustionBlocksUntilRelease(t *testing.T) {
	dsn := requirePostgres(t)
	const size = 3
	pool, err := NewPool(dsn, size, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	held := make([]*pgxpool.Conn, 0, size)
	for range size {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}
	assert.Equal(t, int32(size), pool.Stat().AcquiredConns())

	short, cancelShort := context.WithTimeout(ctx, 100*time.Millisecond)
	_, err = pool.Acquire(short)
	cancelShort()
	assert.Error(t, err, "acquire on an exhausted pool should time out")

	held[0].Release()
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	conn.Release()

	for _, c := range held[1:] {
		c.Release()
	}
}

// A burst of catches in one channel lands as concurrent inventory writes.
func TestPool_CatchBurst(t *testing.T) {
	dsn := requirePostgres(t)
	pool, err := NewPool(dsn, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var echoed int
			err := pool.QueryRow(context.Background(), "SELECT $1::int", i).Scan(&echoed)
			if assert.NoError(t, err) {
				assert.Equal(t, i, echoed)
			}
		}()
	}
	wg.Wait()
	// pgxpool may keep a health-check goroutine for newly opened conns
	checker.Check(2)

	assert.Zero(t, pool.Stat().AcquiredConns())
}
