package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reactivation/internal/domain"
)

var now = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "reactivation.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestOpenAppliesConnectionPragmas(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	var journal string
	require.NoError(t, store.DB().QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&journal))
	assert.Equal(t, "wal", journal)

	var foreignKeys, busyTimeout, synchronous int
	require.NoError(t, store.DB().QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&foreignKeys))
	require.NoError(t, store.DB().QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busyTimeout))
	require.NoError(t, store.DB().QueryRowContext(ctx, `PRAGMA synchronous`).Scan(&synchronous))
	assert.Equal(t, 1, foreignKeys)
	assert.Equal(t, 5000, busyTimeout)
	assert.Equal(t, 1, synchronous)

	_, err := store.DB().ExecContext(ctx, `INSERT INTO variants (id, experiment_id, idx, name) VALUES ('v1', 'missing', 0, 'A')`)
	assert.Error(t, err)
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reactivation.db")
	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertBlacklist(ctx, domain.BlacklistEntry{Phone: "66900000001", Reason: "opt-out", At: now}))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	applied, err := Migrate(ctx, store.DB())
	require.NoError(t, err)
	assert.Empty(t, applied)

	e, found, err := store.GetBlacklist(ctx, "66900000001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "opt-out", e.Reason)
	assert.True(t, now.Equal(e.At))
}

func TestOutreachWindowAndOutcome(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	for i, at := range []time.Time{now.Add(-3 * time.Hour), now.Add(-2 * time.Hour), now} {
		require.NoError(t, store.AppendOutreach(ctx, domain.OutreachRecord{
			ID: string(rune('a' + i)), Phone: "66900000001", At: at, Stage: domain.StageOpening, Outcome: domain.OutcomeSent,
		}))
	}

	recs, err := store.OutreachBetween(ctx, now.Add(-3*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, recs, 2, "from is exclusive, to is inclusive")
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "c", recs[1].ID)

	require.NoError(t, store.UpdateOutreachOutcome(ctx, "b", domain.OutcomeReplied))
	recs, err = store.OutreachByPhone(ctx, "66900000001")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, domain.OutcomeReplied, recs[1].Outcome)

	err = store.UpdateOutreachOutcome(ctx, "missing", domain.OutcomeReplied)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlacklistUpsertRemove(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.UpsertBlacklist(ctx, domain.BlacklistEntry{Phone: "66900000001", Reason: "a", At: now}))
	require.NoError(t, store.UpsertBlacklist(ctx, domain.BlacklistEntry{Phone: "66900000001", Reason: "b", At: now.Add(time.Hour)}))

	list, err := store.ListBlacklist(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Reason)

	removed, err := store.RemoveBlacklist(ctx, "66900000001")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.RemoveBlacklist(ctx, "66900000001")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepliesConversionsAndLeads(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.AppendReply(ctx, domain.InboundReply{
		ID: "r1", Phone: "66900000001", DisplayName: "Ana", Text: "quero voltar", At: now, Intent: domain.IntentInterested,
	}))
	replies, err := store.RepliesBetween(ctx, now.Add(-time.Hour), now)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, domain.IntentInterested, replies[0].Intent)

	value := decimal.RequireFromString("119.90")
	require.NoError(t, store.AppendConversion(ctx, domain.Conversion{
		ID: "c1", Phone: "66900000001", Plan: "Anual", Value: value, At: now, DaysToConvert: 3, Source: "REATIVACAO",
	}))
	convs, err := store.ConversionsBetween(ctx, now.Add(-time.Hour), now)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.True(t, value.Equal(convs[0].Value))
	assert.Equal(t, 3, convs[0].DaysToConvert)

	lead := domain.HotLead{Phone: "66900000001", Name: "Ana", FirstReply: "quero voltar", RepliedAt: now,
		Status: domain.LeadPending, UpdatedAt: now}
	require.NoError(t, store.UpsertLead(ctx, lead))
	lead.Status, lead.Notes = domain.LeadContacted, "ligou"
	require.NoError(t, store.UpsertLead(ctx, lead))

	pending, err := store.ListLeads(ctx, domain.LeadPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
	all, err := store.ListLeads(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ligou", all[0].Notes)

	_, found, err := store.GetLead(ctx, "66900000002")
	require.NoError(t, err)
	assert.False(t, found)
}

func experiment() domain.Experiment {
	return domain.Experiment{
		ID: "exp1", Name: "winback", StartsAt: now, EndsAt: now.Add(30 * 24 * time.Hour),
		Status: domain.ExperimentActive, CreatedAt: now, Weights: []float64{0.7, 0.3},
		Variants: []domain.Variant{
			{ID: "exp1-v1", Index: 0, Name: "A", Template: domain.TemplateGenericReturn, Revenue: decimal.Zero},
			{ID: "exp1-v2", Index: 1, Name: "B", Template: domain.TemplateLoyaltyWinback, Revenue: decimal.Zero},
		},
	}
}

func TestExperimentCountersAndFinalize(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.CreateExperiment(ctx, experiment()))

	require.NoError(t, store.IncrementSends(ctx, "exp1-v1"))
	require.NoError(t, store.IncrementSends(ctx, "exp1-v1"))
	require.NoError(t, store.IncrementSends(ctx, "exp1-v2"))
	require.NoError(t, store.AddConversion(ctx, "exp1-v2", decimal.NewFromInt(119)))
	require.NoError(t, store.AddConversion(ctx, "exp1-v2", decimal.RequireFromString("0.5")))
	assert.ErrorIs(t, store.IncrementSends(ctx, "nope"), domain.ErrNotFound)

	exp, err := store.ExperimentByVariant(ctx, "exp1-v2")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.7, 0.3}, exp.Weights)
	assert.Equal(t, 2, exp.Variants[0].Sends)
	assert.Equal(t, 2, exp.Variants[1].Conversions)
	assert.Equal(t, "119.5", exp.Variants[1].Revenue.String())

	final, err := store.FinalizeExperiment(ctx, "exp1", now, func(e domain.Experiment) (string, error) {
		return e.Variants[domain.PickWinner(e.Variants)].ID, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "exp1-v2", final.WinnerID)

	assert.ErrorIs(t, store.IncrementSends(ctx, "exp1-v1"), domain.ErrExperimentFinalized)
	assert.ErrorIs(t, store.AddConversion(ctx, "exp1-v1", decimal.NewFromInt(1)), domain.ErrExperimentFinalized)
	_, err = store.FinalizeExperiment(ctx, "exp1", now, func(domain.Experiment) (string, error) { return "", nil })
	assert.ErrorIs(t, err, domain.ErrExperimentFinalized)

	stored, err := store.GetExperiment(ctx, "exp1")
	require.NoError(t, err)
	assert.True(t, stored.Finalized())
	assert.Equal(t, 2, stored.Variants[0].Sends, "finalized counters are frozen")
}

func TestFinalizeRollsBackWhenChooseFails(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.CreateExperiment(ctx, experiment()))

	_, err := store.FinalizeExperiment(ctx, "exp1", now, func(domain.Experiment) (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)
	exp, err := store.GetExperiment(ctx, "exp1")
	require.NoError(t, err)
	assert.False(t, exp.Finalized())

	list, err := store.ListExperiments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBatchLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := store.LatestBatch(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []string{"b1", "b2"} {
		require.NoError(t, store.SaveBatch(ctx, domain.Batch{
			ID: id, CreatedAt: now, UpdatedAt: now, Status: domain.BatchPendingApproval,
			Items: []domain.BatchItem{{
				Customer: domain.CustomerRecord{Name: "Ana", Phone: "66900000001"},
				Offer:    domain.Offer{Key: domain.OfferFreeFirstWeek, OfferPrice: decimal.NewFromInt(0)},
				Template: domain.TemplateGenericReturn,
				Message:  "Oi Ana",
			}},
			Stats:   domain.SelectionStats{Total: 3, Selected: 1, TierDistribution: map[domain.Tier]int{domain.TierHigh: 1}},
			Summary: domain.ApprovalSummary{TotalLeads: 1, ROIPercent: 476},
		}))
	}
	latest, err := store.LatestBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b2", latest.ID)
	require.Len(t, latest.Items, 1)
	assert.Equal(t, "Oi Ana", latest.Items[0].Message)
	assert.Equal(t, 1, latest.Stats.TierDistribution[domain.TierHigh])
	assert.Equal(t, 476, latest.Summary.ROIPercent)

	ok, err := store.TransitionBatch(ctx, "b1", domain.BatchPendingApproval, domain.BatchApproved, now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.TransitionBatch(ctx, "b1", domain.BatchPendingApproval, domain.BatchApproved, now)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = store.TransitionBatch(ctx, "nope", domain.BatchPendingApproval, domain.BatchApproved, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func sequence(phone string, nextAt time.Time) domain.FollowupSequence {
	return domain.FollowupSequence{
		Phone: phone, Name: "Ana", BatchID: "b1", Template: domain.TemplateGenericReturn, Score: 70,
		Stage: domain.StageOpening, NextStage: domain.StageReinforcement, NextAt: nextAt,
		StartedAt: now, UpdatedAt: now,
	}
}

func TestSequenceCompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	seq := sequence("66900000001", now.Add(48*time.Hour))
	require.NoError(t, store.StartSequence(ctx, seq))
	assert.ErrorIs(t, store.StartSequence(ctx, seq), domain.ErrSequenceActive)

	next := seq
	next.Stage, next.NextStage, next.NextAt = domain.StageReinforcement, domain.StageUrgency, now.Add(120*time.Hour)
	ok, err := store.TransitionSequence(ctx, domain.StageOpening, next)
	require.NoError(t, err)
	assert.True(t, ok)

	cancelled, err := store.CancelSequence(ctx, seq.Phone, "opt-out", now)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// A stage fired before the cancel must not resurrect the sequence.
	late := next
	late.Stage, late.NextStage = domain.StageUrgency, ""
	ok, err = store.TransitionSequence(ctx, domain.StageReinforcement, late)
	require.NoError(t, err)
	assert.False(t, ok)

	got, found, err := store.GetSequence(ctx, seq.Phone)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.StageCancelled, got.Stage)
	assert.Equal(t, "opt-out", got.CancelReason)
	assert.True(t, got.NextAt.IsZero())

	cancelled, err = store.CancelSequence(ctx, seq.Phone, "again", now)
	require.NoError(t, err)
	assert.False(t, cancelled)

	require.NoError(t, store.StartSequence(ctx, seq), "a terminal sequence can be restarted")
	_, err = store.TransitionSequence(ctx, domain.StageOpening, sequence("66900000999", now))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSequenceKeepsPlanAndTriggers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	seq := sequence("66900000001", now.Add(48*time.Hour))
	seq.Plan = "Clube Full"
	seq.Triggers = []domain.Trigger{domain.TriggerExclusiveBonus, domain.TriggerScarcity}
	require.NoError(t, store.StartSequence(ctx, seq))

	got, found, err := store.GetSequence(ctx, seq.Phone)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Clube Full", got.Plan)
	assert.Equal(t, seq.Triggers, got.Triggers)

	plain := sequence("66900000002", now.Add(48*time.Hour))
	require.NoError(t, store.StartSequence(ctx, plain))
	got, _, err = store.GetSequence(ctx, plain.Phone)
	require.NoError(t, err)
	assert.Nil(t, got.Triggers)
}

func TestDueSequencesOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.StartSequence(ctx, sequence("66900000003", now.Add(-time.Hour))))
	require.NoError(t, store.StartSequence(ctx, sequence("66900000002", now.Add(-2*time.Hour))))
	require.NoError(t, store.StartSequence(ctx, sequence("66900000001", now.Add(-time.Hour))))
	require.NoError(t, store.StartSequence(ctx, sequence("66900000004", now.Add(time.Hour))))

	due, err := store.DueSequences(ctx, now, 0)
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, "66900000002", due[0].Phone)
	assert.Equal(t, "66900000001", due[1].Phone)
	assert.Equal(t, "66900000003", due[2].Phone)

	due, err = store.DueSequences(ctx, now, 1)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	all, err := store.ListSequences(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	opening, err := store.ListSequences(ctx, domain.StageOpening)
	require.NoError(t, err)
	assert.Len(t, opening, 4)
}
