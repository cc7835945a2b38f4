package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job. Triggers are data, not control flow: a
// wall-clock time of day plus an optional weekday restriction, so tests can
// call Fn directly without waiting on real time.
type Job struct {
	Name         string
	At           string // "15:04", scheduler-local wall clock
	WeekdaysOnly bool
	Fn           func(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []Job
	loc    *time.Location
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler firing in the given location.
func NewScheduler(loc *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		jobs:   make([]Job, 0),
		loc:    loc,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler. The trigger time must be "HH:MM".
func (s *Scheduler) AddJob(name string, at string, weekdaysOnly bool, fn func(ctx context.Context) error) error {
	if _, err := time.Parse("15:04", at); err != nil {
		return fmt.Errorf("invalid trigger time %q for job %s: %w", at, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:         name,
		At:           at,
		WeekdaysOnly: weekdaysOnly,
		Fn:           fn,
	})
	slog.Info("Cron job registered", "name", name, "at", at, "weekdays_only", weekdaysOnly)
	return nil
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		next := NextRun(time.Now().In(s.loc), job.At, job.WeekdaysOnly)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(job)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}

// NextRun computes the next trigger instant strictly after now. at must be a
// valid "HH:MM" string (validated in AddJob).
func NextRun(now time.Time, at string, weekdaysOnly bool) time.Time {
	trigger, _ := time.Parse("15:04", at)

	next := time.Date(now.Year(), now.Month(), now.Day(),
		trigger.Hour(), trigger.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	if weekdaysOnly {
		for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			next = next.AddDate(0, 0, 1)
		}
	}

	return next
}
