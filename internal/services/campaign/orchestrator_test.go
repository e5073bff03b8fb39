package campaign

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reactivation/internal/adapters/memory"
	"reactivation/internal/domain"
	"reactivation/internal/random"
	"reactivation/internal/services/experiments"
	"reactivation/internal/services/ledger"
	"reactivation/internal/services/messages"
	"reactivation/internal/services/offers"
	"reactivation/internal/services/reports"
	"reactivation/internal/services/scoring"
	"reactivation/internal/services/selector"
)

var start = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

type sentMessage struct {
	Phone string
	Text  string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, phone, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[phone] {
		return errors.New("transport down")
	}
	f.sent = append(f.sent, sentMessage{Phone: phone, Text: text})
	return nil
}

func (f *fakeSender) failFor(phone string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail == nil {
		f.fail = map[string]bool{}
	}
	f.fail[phone] = fail
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fakePopulation struct {
	rows  []domain.CustomerRecord
	err   error
	calls atomic.Int32
}

func (f *fakePopulation) FetchInactive(context.Context) ([]domain.CustomerRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.CustomerRecord(nil), f.rows...), nil
}

type harness struct {
	orch       *Orchestrator
	store      *memory.Store
	clock      *clockwork.FakeClock
	sender     *fakeSender
	population *fakePopulation
	tracker    *experiments.Tracker
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.SendDelayMin, opts.SendDelayMax = 0, 0
	opts.PopulationRetryDelay = time.Millisecond
	return opts
}

func newHarness(t *testing.T, opts Options, rows ...domain.CustomerRecord) *harness {
	t.Helper()
	store := memory.New()
	clock := clockwork.NewFakeClockAt(start)
	rng := random.New(42)
	log := zap.NewNop()
	tracker := experiments.New(store, clock, rng, log)
	policy := selector.Policy{CooldownDays: 7, ScoreFloor: 0, TightScoreFloor: 0, MinBatch: 10, MaxBatch: 10}
	h := &harness{
		store:      store,
		clock:      clock,
		sender:     &fakeSender{},
		population: &fakePopulation{rows: rows},
		tracker:    tracker,
	}
	h.orch = New(Deps{
		Population:  h.population,
		Sender:      h.sender,
		Offers:      offers.New(),
		Messages:    messages.New(rng),
		Scorer:      scoring.New(clock),
		Selector:    selector.New(store, store, clock, policy, log),
		Experiments: tracker,
		Ledger:      ledger.New(store, store, store, tracker, nil, clock, log),
		Performance: reports.New(h.population, store, store, store, store, store, clock),
		Batches:     store,
		Sequences:   store,
		Clock:       clock,
		Rand:        rng,
		Log:         log,
	}, opts)
	return h
}

func customer(name, phone string, daysInactive int) domain.CustomerRecord {
	return domain.CustomerRecord{
		Name:         name,
		Phone:        phone,
		Plan:         "Mensal",
		StartDate:    start.AddDate(-1, 0, 0),
		EndDate:      start.AddDate(0, 0, -daysInactive),
		LastActivity: start.AddDate(0, 0, -daysInactive),
		ChurnReason:  "falta de tempo",
		Age:          30,
	}
}

func threeMembers() []domain.CustomerRecord {
	return []domain.CustomerRecord{
		customer("Ana Souza", "66900000001", 10),
		customer("Bruno Lima", "(66) 90000-0002", 40),
		customer("Carla Dias", "+55 66 90000-0003", 90),
	}
}

func TestPrepareDailyBatchParksPendingBatch(t *testing.T) {
	ctx := context.Background()
	rows := append(threeMembers(), customer("Sem Telefone", "123", 10))
	h := newHarness(t, testOptions(), rows...)

	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.BatchPendingApproval, batch.Status)
	require.Len(t, batch.Items, 3)
	assert.Equal(t, 4, batch.Stats.Total)
	assert.Equal(t, 1, batch.Stats.ExcludedInvalidPhone)
	assert.Equal(t, 3, batch.Summary.TotalLeads)
	wantROI := int(math.Round(float64(batch.Summary.ExpectedRevenue) / float64(3*CostPerLead) * 100))
	assert.Equal(t, wantROI, batch.Summary.ROIPercent)

	for _, it := range batch.Items {
		assert.True(t, domain.ValidPhone(it.Customer.Phone))
		assert.NotEmpty(t, it.Message)
		assert.NotEmpty(t, it.Template)
		assert.NotEmpty(t, it.Offer.Key)
		assert.Empty(t, it.VariantID)
	}
	assert.Empty(t, h.sender.messages(), "nothing is sent before approval")

	latest, err := h.orch.LatestBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, latest.ID)
}

func TestPopulationFailureDegradesToEmptyBatch(t *testing.T) {
	opts := testOptions()
	opts.PopulationRetries = 2
	h := newHarness(t, opts)
	h.population.err = errors.New("mysql: connection refused")

	batch, err := h.orch.PrepareDailyBatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batch.Items)
	assert.Equal(t, int32(3), h.population.calls.Load())
}

func TestApproveDispatchesAndStartsSequences(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)

	res, err := h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Len(t, h.sender.messages(), 3)

	stored, err := h.store.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchDispatched, stored.Status)

	for _, it := range batch.Items {
		seq, found, err := h.store.GetSequence(ctx, it.Customer.Phone)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.StageOpening, seq.Stage)
		assert.Equal(t, domain.StageReinforcement, seq.NextStage)
		assert.Equal(t, start.Add(48*time.Hour), seq.NextAt)

		history, err := h.store.OutreachByPhone(ctx, it.Customer.Phone)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.StageOpening, history[0].Stage)
		assert.Equal(t, domain.OutcomeSent, history[0].Outcome)
		assert.Equal(t, batch.ID, history[0].BatchID)
	}

	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	assert.ErrorIs(t, err, domain.ErrBatchNotPending)
	assert.Len(t, h.sender.messages(), 3, "a batch is dispatched once")
}

func TestApproveEditedMessageAndUnknownPhone(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)

	res, err := h.orch.Approve(ctx, batch.ID, []Approval{
		{Phone: "66900000001", Message: "Oi Ana, volta pra gente!"},
		{Phone: "66999999999"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []sentMessage{{Phone: "66900000001", Text: "Oi Ana, volta pra gente!"}}, h.sender.messages())

	_, found, err := h.store.GetSequence(ctx, "66900000002")
	require.NoError(t, err)
	assert.False(t, found, "unapproved items are not contacted")
}

func TestSendFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	h.sender.failFor("66900000002", true)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)

	res, err := h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)

	history, err := h.store.OutreachByPhone(ctx, "66900000002")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.OutcomeFailed, history[0].Outcome)
	assert.Equal(t, "transport down", history[0].Error)

	_, found, err := h.store.GetSequence(ctx, "66900000002")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFollowupStagesRunToDone(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)

	res, err := h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Total, "nothing is due right after the opening")

	h.clock.Advance(48 * time.Hour)
	res, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)
	for _, r := range res.Results {
		assert.Equal(t, domain.StageReinforcement, r.Stage)
	}
	seq, _, err := h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StageReinforcement, seq.Stage)
	assert.Equal(t, domain.StageUrgency, seq.NextStage)
	assert.Equal(t, start.Add(120*time.Hour), seq.NextAt)

	h.clock.Advance(71 * time.Hour)
	res, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	h.clock.Advance(time.Hour)
	res, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)

	seq, _, err = h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDone, seq.Stage)
	assert.Empty(t, seq.NextStage)

	history, err := h.store.OutreachByPhone(ctx, "66900000001")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.StageOpening, history[0].Stage)
	assert.Equal(t, domain.StageReinforcement, history[1].Stage)
	assert.Equal(t, domain.StageUrgency, history[2].Stage)

	h.clock.Advance(240 * time.Hour)
	res, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Len(t, h.sender.messages(), 9)
}

func TestCancelAfterReinforcementStopsUrgency(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)

	h.clock.Advance(48 * time.Hour)
	_, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)

	require.NoError(t, h.orch.CancelSequence(ctx, "66900000001", "opt-out"))
	require.NoError(t, h.orch.CancelSequence(ctx, "66900000777", "unknown phone"))

	h.clock.Advance(72 * time.Hour)
	res, err := h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	for _, r := range res.Results {
		assert.NotEqual(t, "66900000001", r.Phone)
	}

	seq, _, err := h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StageCancelled, seq.Stage)
	assert.Equal(t, "opt-out", seq.CancelReason)

	cancelled, err := h.orch.ListSequences(ctx, domain.StageCancelled)
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)
}

func TestStageRetriesThenCancels(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	opts.MaxStageAttempts = 2
	opts.StageRetryDelay = time.Hour
	h := newHarness(t, opts, customer("Ana Souza", "66900000001", 10))
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)

	h.sender.failFor("66900000001", true)
	h.clock.Advance(48 * time.Hour)
	res, err := h.orch.RunDueStages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	seq, _, err := h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StageOpening, seq.Stage)
	assert.Equal(t, 1, seq.Attempts)
	assert.Equal(t, h.clock.Now().Add(time.Hour), seq.NextAt)

	h.clock.Advance(time.Hour)
	_, err = h.orch.RunDueStages(ctx)
	require.NoError(t, err)

	seq, _, err = h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StageCancelled, seq.Stage)
	assert.Equal(t, ReasonDeliveryFailed, seq.CancelReason)
}

func TestUnattendedRunDispatchesEverything(t *testing.T) {
	opts := testOptions()
	opts.Unattended = true
	h := newHarness(t, opts, threeMembers()...)

	res, err := h.orch.RunDaily(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Dispatch)
	assert.Equal(t, 3, res.Dispatch.Sent)
	assert.Equal(t, domain.BatchDispatched, res.Batch.Status)
}

func TestAttendedRunWaitsForApproval(t *testing.T) {
	h := newHarness(t, testOptions(), threeMembers()...)
	res, err := h.orch.RunDaily(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Dispatch)
	assert.Equal(t, domain.BatchPendingApproval, res.Batch.Status)
}

func TestRunLockRejectsOverlap(t *testing.T) {
	h := newHarness(t, testOptions(), threeMembers()...)
	require.True(t, h.orch.run.TryLock())
	defer h.orch.run.Unlock()

	_, err := h.orch.RunDaily(context.Background())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
	_, err = h.orch.RunDueStages(context.Background())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
}

func TestExperimentVariantOverridesTemplateAndOffer(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	h := newHarness(t, opts, threeMembers()...)
	exp, err := h.tracker.CreateExperiment(ctx, experiments.ExperimentSpec{
		Name: "winback",
		Variants: []experiments.VariantSpec{
			{Name: "A", Template: domain.TemplateLoyaltyWinback, Offer: domain.OfferFreeFirstWeek},
			{Name: "B", Template: domain.TemplateLoyaltyWinback, Offer: domain.OfferFreeFirstWeek},
		},
	})
	require.NoError(t, err)
	opts.ExperimentID = exp.ID
	h.orch.opts = opts

	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	require.Len(t, batch.Items, 3)
	for _, it := range batch.Items {
		assert.NotEmpty(t, it.VariantID)
		assert.Equal(t, domain.TemplateLoyaltyWinback, it.Template)
		assert.Equal(t, domain.OfferFreeFirstWeek, it.Offer.Key)
	}

	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)
	got, err := h.tracker.Get(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Variants[0].Sends+got.Variants[1].Sends)
}

func TestDispatchPacesSendsAndStopsOnCancel(t *testing.T) {
	opts := testOptions()
	opts.SendDelayMin, opts.SendDelayMax = 2*time.Second, 2*time.Second
	h := newHarness(t, opts, threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	type outcome struct {
		res domain.DispatchResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
		done <- outcome{res, err}
	}()

	waitCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	require.NoError(t, h.clock.BlockUntilContext(waitCtx, 1))
	assert.Len(t, h.sender.messages(), 1)
	h.clock.Advance(2 * time.Second)

	require.NoError(t, h.clock.BlockUntilContext(waitCtx, 1))
	assert.Len(t, h.sender.messages(), 2)
	cancel()

	out := <-done
	assert.ErrorIs(t, out.err, context.Canceled)
	assert.Equal(t, 2, out.res.Sent)
	assert.Equal(t, 1, out.res.Failed)

	stored, err := h.store.GetBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchDispatched, stored.Status)
}

func TestScorePopulation(t *testing.T) {
	h := newHarness(t, testOptions(), threeMembers()...)
	summary, err := h.orch.ScorePopulation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
}

func TestOnSendObservesEveryResult(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	var seen []string
	opts.OnSend = func(res domain.SendResult) { seen = append(seen, res.Phone) }
	h := newHarness(t, opts, threeMembers()...)

	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	approvals := append(ApproveAll(batch), Approval{Phone: "66911112222"})
	res, err := h.orch.Approve(ctx, batch.ID, approvals)
	require.NoError(t, err)
	assert.Len(t, seen, res.Total)
	assert.Equal(t, 4, res.Total)
}

func TestSequencesCarryTriggerProfile(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)
	_, err = h.orch.Approve(ctx, batch.ID, ApproveAll(batch))
	require.NoError(t, err)

	recent, found, err := h.store.GetSequence(ctx, "66900000001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Mensal", recent.Plan)
	assert.Equal(t, []domain.Trigger{domain.TriggerScarcity, domain.TriggerSocialProof, domain.TriggerExclusiveBonus}, recent.Triggers)

	older, _, err := h.store.GetSequence(ctx, "66900000002")
	require.NoError(t, err)
	assert.Equal(t, []domain.Trigger{domain.TriggerSocialProof, domain.TriggerAnchoring, domain.TriggerScarcity}, older.Triggers)
}

func TestPreviewSequence(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testOptions(), threeMembers()...)
	batch, err := h.orch.PrepareDailyBatch(ctx)
	require.NoError(t, err)

	preview, err := h.orch.PreviewSequence(ctx, batch.ID, "(66) 90000-0001")
	require.NoError(t, err)
	assert.Equal(t, "66900000001", preview.Phone)
	assert.Equal(t, "recent exit: maximum urgency", preview.Profile.Rationale)
	require.Len(t, preview.Stages, 3)

	assert.Equal(t, domain.StageOpening, preview.Stages[0].Stage)
	assert.True(t, preview.Stages[0].SendAt.Equal(start))
	assert.NotEmpty(t, preview.Stages[0].Text)

	reinforcement := preview.Stages[1]
	assert.Equal(t, domain.StageReinforcement, reinforcement.Stage)
	assert.True(t, reinforcement.SendAt.Equal(start.Add(48*time.Hour)))
	assert.Equal(t, []domain.Trigger{domain.TriggerScarcity, domain.TriggerSocialProof}, reinforcement.Triggers)
	assert.Contains(t, reinforcement.Text, "Ana, tudo bem?")

	urgency := preview.Stages[2]
	assert.Equal(t, domain.StageUrgency, urgency.Stage)
	assert.True(t, urgency.SendAt.Equal(start.Add(120*time.Hour)))
	assert.Equal(t, []domain.Trigger{domain.TriggerScarcity}, urgency.Triggers)

	assert.Empty(t, h.sender.messages(), "previewing sends nothing")

	_, err = h.orch.PreviewSequence(ctx, batch.ID, "66900000999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = h.orch.PreviewSequence(ctx, "missing", "66900000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
