package leaktest

import (
	"testing"
	"time"
)

type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestGoroutineChecker(t *testing.T) {
	t.Run("no goroutines started", func(t *testing.T) {
		CheckNoGoroutineLeak(t, func() {})
	})

	t.Run("goroutine that exits is not a leak", func(t *testing.T) {
		CheckNoGoroutineLeak(t, func() {
			done := make(chan struct{})
			go func() { close(done) }()
			<-done
		})
	})

	t.Run("goroutine within tolerance", func(t *testing.T) {
		checker := NewGoroutineChecker(t)
		stop := make(chan struct{})
		go func() { <-stop }()
		time.Sleep(settleDelay)

		checker.Check(1)
		close(stop)
	})

	t.Run("leak is reported", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		checker := NewGoroutineChecker(rec)
		stop := make(chan struct{})
		go func() { <-stop }()

		checker.Check(0)
		close(stop)
		if !rec.failed {
			t.Fatal("expected the running goroutine to be reported")
		}
	})
}
