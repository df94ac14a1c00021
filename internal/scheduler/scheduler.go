package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MathCatch_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

type task struct {
	interval time.Duration
	next     time.Time
	quit     chan struct{}
}

// Scheduler runs one recurring timer per key. Each firing is handed to the
// worker pool; a firing that finds the pool queue full is dropped, there is no catch-up.
type Scheduler struct {
	workerPool Enqueuer
	mu         sync.Mutex
	tasks      map[string]*task
	quit       chan struct{}
	stopped    bool
	wg         sync.WaitGroup
}

// New creates a new scheduler. With a nil pool jobs run on the timer goroutine.
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		tasks:      make(map[string]*task),
		quit:       make(chan struct{}),
	}
}

// Schedule registers job to run every interval under key, replacing any task already
// registered for that key. The first run happens one interval from now.
func (s *Scheduler) Schedule(key string, interval time.Duration, job worker.Job) bool {
	if interval <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	if existing, ok := s.tasks[key]; ok {
		close(existing.quit)
	}

	t := &task{
		interval: interval,
		next:     time.Now().Add(interval),
		quit:     make(chan struct{}),
	}
	s.tasks[key] = t

	s.wg.Add(1)
	go s.run(key, t, job)
	return true
}

func (s *Scheduler) run(key string, t *task, job worker.Job) {
	defer s.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.mu.Lock()
			t.next = now.Add(t.interval)
			s.mu.Unlock()
			s.dispatch(job)
		case <-t.quit:
			return
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) dispatch(job worker.Job) {
	if s.workerPool != nil {
		s.workerPool.Enqueue(job)
		return
	}
	_ = job.Process(context.Background())
}

// Cancel stops the task registered under key
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	close(t.quit)
	delete(s.tasks, key)
	return true
}

// Has reports whether a task is registered under key
func (s *Scheduler) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// NextRun returns when the task under key fires next
func (s *Scheduler) NextRun(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return time.Time{}, false
	}
	return t.next, true
}

// Interval returns the period of the task under key
func (s *Scheduler) Interval(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return 0, false
	}
	return t.interval, true
}

// Len returns the number of registered tasks
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop stops all scheduled jobs and waits for their goroutines to exit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.quit)
	s.tasks = make(map[string]*task)
	s.mu.Unlock()

	s.wg.Wait()
}
