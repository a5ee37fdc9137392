package scheduler

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/dom/lol-extension-backend/internal/logger"
)

// TaskFunc does the actual work of a scheduled task.
type TaskFunc func(ctx context.Context) error

type task struct {
	name     string
	interval time.Duration
	fn       TaskFunc

	enabled   bool
	running   bool
	lastRun   *time.Time
	lastError string
}

// TaskStatus is the externally visible state of one task.
type TaskStatus struct {
	Name      string     `json:"name"`
	Interval  string     `json:"interval"`
	Enabled   bool       `json:"enabled"`
	Running   bool       `json:"running"`
	LastRun   *time.Time `json:"lastRun,omitempty"`
	NextRun   *time.Time `json:"nextRun,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

// Scheduler runs named tasks at fixed intervals off a single poll loop. A
// due task executes in its own goroutine; the running flag keeps a slow run
// from being re-entered on the next tick. Explicitly constructed and
// injected, no package-level singleton.
type Scheduler struct {
	mu    stdsync.Mutex
	tasks map[string]*task
	order []string

	pollInterval time.Duration
	log          *logger.Logger
	now          func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	wg     stdsync.WaitGroup
}

func New(pollInterval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		tasks:        make(map[string]*task),
		pollInterval: pollInterval,
		log:          log,
		now:          time.Now,
	}
}

// Add registers a task. Tasks registered after Start are picked up on the
// next tick.
func (s *Scheduler) Add(name string, interval time.Duration, fn TaskFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[name]; !exists {
		s.order = append(s.order, name)
	}
	s.tasks[name] = &task{
		name:     name,
		interval: interval,
		fn:       fn,
		enabled:  true,
	}
}

// Start launches the poll loop. The loop stops when Stop is called or the
// given context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.loop(ctx)
	s.log.Info("scheduler started", "poll_interval", s.pollInterval)
}

// Stop cancels the poll loop and waits for it and any in-flight task runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

func (s *Scheduler) runDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []*task
	for _, name := range s.order {
		t := s.tasks[name]
		if !t.enabled || t.running {
			continue
		}
		if t.lastRun != nil && now.Sub(*t.lastRun) < t.interval {
			continue
		}
		t.running = true
		due = append(due, t)
	}
	s.mu.Unlock()

	for _, t := range due {
		s.wg.Add(1)
		go s.execute(ctx, t)
	}
}

func (s *Scheduler) execute(ctx context.Context, t *task) {
	defer s.wg.Done()

	s.log.Info("running scheduled task", "task", t.name)
	err := t.fn(ctx)

	s.mu.Lock()
	finished := s.now()
	t.lastRun = &finished
	t.running = false
	if err != nil {
		t.lastError = err.Error()
	} else {
		t.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("scheduled task failed", "task", t.name, "error", err)
	} else {
		s.log.Info("scheduled task finished", "task", t.name)
	}
}

// Run triggers a task immediately, outside its interval. Fails when the
// task is unknown or already running.
func (s *Scheduler) Run(name string) error {
	s.mu.Lock()
	t, ok := s.tasks[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown task: %s", name)
	}
	if t.running {
		s.mu.Unlock()
		return fmt.Errorf("task already running: %s", name)
	}
	t.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.execute(context.Background(), t)
	return nil
}

// Tasks returns a snapshot of every task in registration order.
func (s *Scheduler) Tasks() []TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TaskStatus, 0, len(s.order))
	for _, name := range s.order {
		t := s.tasks[name]
		status := TaskStatus{
			Name:      t.name,
			Interval:  t.interval.String(),
			Enabled:   t.enabled,
			Running:   t.running,
			LastRun:   t.lastRun,
			LastError: t.lastError,
		}
		if t.lastRun != nil {
			next := t.lastRun.Add(t.interval)
			status.NextRun = &next
		}
		out = append(out, status)
	}
	return out
}
