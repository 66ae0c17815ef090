package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs named jobs on cron schedules, such as periodic full
// rescans and history pruning.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	jobs    map[string]cron.EntryID
	running bool
}

// NewScheduler creates a scheduler with no jobs.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger.With("component", "watch.scheduler"),
		jobs:   make(map[string]cron.EntryID),
	}
}

// AddJob schedules fn under name using a standard five-field cron
// expression. An empty spec leaves the job unscheduled.
//
// Common cron expressions:
//   - "*/15 * * * *" - Every 15 minutes
//   - "0 3 * * *"    - Daily at 3 AM
//   - "@hourly"      - Every hour
func (s *Scheduler) AddJob(ctx context.Context, name, spec string, fn func(ctx context.Context) error) error {
	if spec == "" {
		s.logger.Debug("job not scheduled", "job", name)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q for job %q: %w", spec, name, err)
	}

	id := s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.run(ctx, name, fn)
	}))
	s.jobs[name] = id

	s.logger.Info("job scheduled", "job", name, "schedule", spec)
	return nil
}

func (s *Scheduler) run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	s.logger.Debug("job started", "job", name)

	if err := fn(ctx); err != nil {
		s.logger.Error("job failed", "job", name, "error", err)
		return
	}

	s.logger.Debug("job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// Start begins running scheduled jobs. The scheduler stops when ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("scheduler already running")
	}

	s.cron.Start()
	s.running = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Debug("scheduler stopped")
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

// NextRun returns the next activation time of the named job. It reports
// false for an unknown job or before Start.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return time.Time{}, false
	}

	next := s.cron.Entry(id).Next
	return next, !next.IsZero()
}
