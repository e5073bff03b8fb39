package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reactivation/internal/domain"
)

var t0 = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

func TestBatchTransitionsAreCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveBatch(ctx, domain.Batch{ID: "b1", CreatedAt: t0, Status: domain.BatchPendingApproval}))

	ok, err := s.TransitionBatch(ctx, "b1", domain.BatchPendingApproval, domain.BatchApproved, t0)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.TransitionBatch(ctx, "b1", domain.BatchPendingApproval, domain.BatchApproved, t0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.TransitionBatch(ctx, "missing", domain.BatchPendingApproval, domain.BatchApproved, t0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	latest, err := s.LatestBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchApproved, latest.Status)
}

func TestSequenceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	seq := domain.FollowupSequence{
		Phone:     "66900000001",
		Stage:     domain.StageOpening,
		NextStage: domain.StageReinforcement,
		NextAt:    t0.Add(48 * time.Hour),
		StartedAt: t0,
	}
	require.NoError(t, s.StartSequence(ctx, seq))
	assert.True(t, errors.Is(s.StartSequence(ctx, seq), domain.ErrSequenceActive))

	due, err := s.DueSequences(ctx, t0.Add(47*time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
	due, err = s.DueSequences(ctx, t0.Add(48*time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	next := seq
	next.Stage = domain.StageReinforcement
	ok, err := s.TransitionSequence(ctx, domain.StageOpening, next)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.TransitionSequence(ctx, domain.StageOpening, next)
	require.NoError(t, err)
	assert.False(t, ok, "stale stage loses")

	cancelled, err := s.CancelSequence(ctx, seq.Phone, "opt-out", t0)
	require.NoError(t, err)
	assert.True(t, cancelled)
	cancelled, err = s.CancelSequence(ctx, seq.Phone, "again", t0)
	require.NoError(t, err)
	assert.False(t, cancelled)

	got, found, err := s.GetSequence(ctx, seq.Phone)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.StageCancelled, got.Stage)
	assert.Equal(t, "opt-out", got.CancelReason)

	require.NoError(t, s.StartSequence(ctx, seq), "a terminal sequence can be restarted")
}

func TestVariantCountersStopAfterFinalize(t *testing.T) {
	ctx := context.Background()
	s := New()
	exp := domain.Experiment{
		ID:     "e1",
		Status: domain.ExperimentActive,
		Variants: []domain.Variant{
			{ID: "e1-v1", Revenue: decimal.Zero},
			{ID: "e1-v2", Revenue: decimal.Zero},
		},
	}
	require.NoError(t, s.CreateExperiment(ctx, exp))
	require.NoError(t, s.IncrementSends(ctx, "e1-v2"))
	require.NoError(t, s.AddConversion(ctx, "e1-v2", decimal.NewFromInt(119)))

	got, err := s.ExperimentByVariant(ctx, "e1-v2")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Variants[1].Sends)
	assert.True(t, got.Variants[1].Revenue.Equal(decimal.NewFromInt(119)))

	fin, err := s.FinalizeExperiment(ctx, "e1", t0, func(e domain.Experiment) (string, error) {
		return e.Variants[domain.PickWinner(e.Variants)].ID, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "e1-v2", fin.WinnerID)

	assert.True(t, errors.Is(s.IncrementSends(ctx, "e1-v1"), domain.ErrExperimentFinalized))
	assert.True(t, errors.Is(s.IncrementSends(ctx, "nope"), domain.ErrNotFound))
	_, err = s.FinalizeExperiment(ctx, "e1", t0, nil)
	assert.True(t, errors.Is(err, domain.ErrExperimentFinalized))
}

func TestOutreachOutcomeUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AppendOutreach(ctx, domain.OutreachRecord{ID: "o1", Phone: "66900000001", At: t0, Outcome: domain.OutcomeSent}))
	require.NoError(t, s.UpdateOutreachOutcome(ctx, "o1", domain.OutcomeReplied))
	recs, err := s.OutreachByPhone(ctx, "66900000001")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.OutcomeReplied, recs[0].Outcome)
	assert.True(t, errors.Is(s.UpdateOutreachOutcome(ctx, "o2", domain.OutcomeReplied), domain.ErrNotFound))
}
