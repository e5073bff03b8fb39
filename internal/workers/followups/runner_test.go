package followups

import (
	"context"
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

type stubStages struct {
	calls atomic.Int32
	err   error
	seen  chan struct{}
}

func (s *stubStages) RunDueStages(context.Context) (domain.DispatchResult, error) {
	s.calls.Add(1)
	if s.seen != nil {
		s.seen <- struct{}{}
	}
	res := domain.DispatchResult{}
	res.Add(domain.SendResult{Phone: "66900000001", Status: domain.SendOK})
	return res, s.err
}

func TestRunOnceSkipsBusyCampaign(t *testing.T) {
	busy := &stubStages{err: domain.ErrRunInProgress}
	assert.Equal(t, 1, RunOnce(context.Background(), busy, zap.NewNop()))
	assert.Equal(t, int32(1), busy.calls.Load())
}

func TestRunPollsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	stages := &stubStages{seen: make(chan struct{}, 4)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, stages, clock, time.Minute, zap.NewNop()) }()

	waitCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	for i := 0; i < 2; i++ {
		require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
		clock.Advance(time.Minute)
		select {
		case <-stages.seen:
		case <-waitCtx.Done():
			t.Fatal("worker did not poll")
		}
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), stages.calls.Load())
}

func TestRunWithoutIntervalReturns(t *testing.T) {
	stages := &stubStages{}
	require.NoError(t, Run(context.Background(), stages, clockwork.NewFakeClock(), 0, zap.NewNop()))
	assert.Zero(t, stages.calls.Load())
}
