package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/testing/leaktest"
	"github.com/osse101/MathCatch_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func newMockJob() *MockJob {
	return &MockJob{Done: make(chan struct{}, 10)}
}

func waitRuns(t *testing.T, job *MockJob, n int, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-job.Done:
		case <-deadline:
			t.Fatalf("Timeout waiting for job execution (%d of %d)", i, n)
		}
	}
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := newMockJob()
	require.True(t, sched.Schedule("c1", 10*time.Millisecond, job))

	waitRuns(t, job, 2, 200*time.Millisecond)
	assert.GreaterOrEqual(t, job.RunCount.Load(), int32(2))
}

func TestScheduler_InlineWithoutPool(t *testing.T) {
	sched := New(nil)
	defer sched.Stop()

	job := newMockJob()
	sched.Schedule("c1", 10*time.Millisecond, job)
	waitRuns(t, job, 1, 200*time.Millisecond)
}

func TestScheduler_ReplaceAndCancel(t *testing.T) {
	sched := New(nil)
	defer sched.Stop()

	first := newMockJob()
	second := newMockJob()

	sched.Schedule("c1", time.Hour, first)
	before, ok := sched.NextRun("c1")
	require.True(t, ok)

	sched.Schedule("c1", 10*time.Millisecond, second)
	assert.Equal(t, 1, sched.Len())
	d, ok := sched.Interval("c1")
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, d)
	after, _ := sched.NextRun("c1")
	assert.True(t, after.Before(before))

	waitRuns(t, second, 1, 200*time.Millisecond)
	assert.Equal(t, int32(0), first.RunCount.Load())

	assert.True(t, sched.Cancel("c1"))
	assert.False(t, sched.Cancel("c1"))
	assert.False(t, sched.Has("c1"))

	_, ok = sched.NextRun("c1")
	assert.False(t, ok)
}

func TestScheduler_RejectsInvalid(t *testing.T) {
	sched := New(nil)
	assert.False(t, sched.Schedule("c1", 0, newMockJob()))

	sched.Stop()
	sched.Stop()
	assert.False(t, sched.Schedule("c1", time.Second, newMockJob()))
	assert.Equal(t, 0, sched.Len())
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	sched := New(nil)
	for _, key := range []string{"a", "b", "c", "d"} {
		sched.Schedule(key, time.Hour, newMockJob())
	}
	assert.Equal(t, 4, sched.Len())
	sched.Stop()

	checker.Check(0)
}
