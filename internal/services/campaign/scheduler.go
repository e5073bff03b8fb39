package campaign

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"reactivation/internal/domain"
)

// DailyRunner is what the scheduler triggers once a day.
type DailyRunner interface {
	RunDaily(ctx context.Context) (RunResult, error)
}

// SchedulerStatus is the handle the HTTP surface reports.
type SchedulerStatus struct {
	Active    bool      `json:"active"`
	NextRun   time.Time `json:"nextRun,omitempty"`
	LastRun   time.Time `json:"lastRun,omitempty"`
	LastError string    `json:"lastError,omitempty"`
}

// Scheduler fires the daily run at a fixed local time of day.
type Scheduler struct {
	runner DailyRunner
	clock  clockwork.Clock
	log    *zap.Logger
	hour   int
	minute int
	loc    *time.Location

	mu     sync.Mutex
	status SchedulerStatus
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(runner DailyRunner, clock clockwork.Clock, hour, minute int, loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{runner: runner, clock: clock, log: log, hour: hour, minute: minute, loc: loc}
}

// NextRun returns the first trigger time strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, s.minute, 0, 0, s.loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start launches the loop. Starting an active scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Active {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.status.Active = true
	s.status.NextRun = s.NextRun(s.clock.Now())
	go s.loop(ctx, s.done)
	s.log.Info("daily scheduler started", zap.Time("next_run", s.status.NextRun))
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		s.mu.Lock()
		s.status.Active = false
		s.status.NextRun = time.Time{}
		s.mu.Unlock()
		s.log.Info("daily scheduler stopped")
	}()

	for {
		now := s.clock.Now()
		next := s.NextRun(now)
		s.mu.Lock()
		s.status.NextRun = next
		s.mu.Unlock()

		timer := s.clock.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}
		s.fire(ctx)
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	res, err := s.runner.RunDaily(ctx)
	s.mu.Lock()
	s.status.LastRun = s.clock.Now()
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		s.log.Warn("daily run skipped, another run is in progress")
	case err != nil:
		s.log.Error("daily run failed", zap.Error(err))
	default:
		s.log.Info("daily run finished",
			zap.String("batch_id", res.Batch.ID),
			zap.Int("items", len(res.Batch.Items)))
	}
}
