package campaign

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"reactivation/internal/domain"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
	ran   chan struct{}
}

func (r *countingRunner) RunDaily(context.Context) (RunResult, error) {
	r.calls.Add(1)
	r.ran <- struct{}{}
	return RunResult{Batch: domain.Batch{ID: "b1"}}, r.err
}

func TestSchedulerNextRun(t *testing.T) {
	loc, err := time.LoadLocation("America/Cuiaba")
	require.NoError(t, err)
	s := NewScheduler(nil, clockwork.NewFakeClock(), 9, 0, loc, zap.NewNop())

	before := time.Date(2025, 6, 16, 8, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, loc), s.NextRun(before))

	exactly := time.Date(2025, 6, 16, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 17, 9, 0, 0, 0, loc), s.NextRun(exactly))

	after := time.Date(2025, 6, 16, 17, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 17, 9, 0, 0, 0, loc), s.NextRun(after))

	// 12:30 UTC is 08:30 in Cuiabá.
	utc := time.Date(2025, 6, 16, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, loc), s.NextRun(utc))
}

func TestSchedulerFiresDailyAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 16, 8, 59, 0, 0, time.UTC))
	runner := &countingRunner{ran: make(chan struct{}, 4), err: errors.New("population down")}
	s := NewScheduler(runner, clock, 9, 0, time.UTC, zap.NewNop())

	s.Start(context.Background())
	s.Start(context.Background())
	status := s.Status()
	assert.True(t, status.Active)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), status.NextRun)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)
	select {
	case <-runner.ran:
	case <-ctx.Done():
		t.Fatal("daily run did not fire")
	}

	// The loop re-arms for the next day once the run has been recorded.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	status = s.Status()
	assert.Equal(t, clock.Now(), status.LastRun)
	assert.Equal(t, "population down", status.LastError)
	assert.Equal(t, time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC), status.NextRun)
	assert.Equal(t, int32(1), runner.calls.Load())

	s.Stop()
	assert.False(t, s.Status().Active)
	s.Stop()
}
