package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

// timerSet holds one-shot timers keyed by K; the zero value is ready to use. Arming a key again replaces
// its timer; after close nothing new is armed and pending timers never fire.
type timerSet[K comparable] struct {
	mu       sync.Mutex
	timers   map[K]*time.Timer
	closed   bool
	inflight sync.WaitGroup
}

func (s *timerSet[K]) arm(key K, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timers == nil {
		s.timers = make(map[K]*time.Timer)
	}
	if old := s.timers[key]; old != nil {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed || s.timers[key] != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.inflight.Add(1)
		s.mu.Unlock()

		defer s.inflight.Done()
		fn()
	})
	s.timers[key] = t
}

// disarm reports whether a pending timer for key was cancelled.
func (s *timerSet[K]) disarm(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[key]
	if ok {
		t.Stop()
		delete(s.timers, key)
	}
	return ok
}

func (s *timerSet[K]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// close cancels pending timers and waits for callbacks already running,
// giving up when ctx ends.
func (s *timerSet[K]) close(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	s.closed = true
	cancelled := len(s.timers)
	for _, t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
	s.mu.Unlock()

	log.Info("Stopping "+name, "cancelled", cancelled)

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn(name+" did not drain before shutdown deadline", "error", ctx.Err())
		return ctx.Err()
	}
}
