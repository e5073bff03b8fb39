// Package campaign sequences the daily reactivation run: detection, scoring,
// selection, enrichment, approval, dispatch and the multi-day follow-up.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
	"reactivation/internal/random"
	"reactivation/internal/services/experiments"
	"reactivation/internal/services/ledger"
	"reactivation/internal/services/reports"
	"reactivation/internal/services/scoring"
	"reactivation/internal/services/selector"
)

// Scorer ranks the population.
type Scorer interface {
	ScoreAll(customers []domain.CustomerRecord) []domain.ScoredCustomer
}

// BatchSelector applies eligibility and the adaptive quota.
type BatchSelector interface {
	AdaptQuota(rate float64) selector.Quota
	SelectDailyBatch(ctx context.Context, population []domain.ScoredCustomer, targetSize int) (selector.Selection, error)
}

// VariantTracker assigns experiment variants and counts their sends.
type VariantTracker interface {
	AssignVariant(ctx context.Context, experimentID string) (domain.Variant, error)
	RecordSend(ctx context.Context, variantID string) error
}

// AttemptRecorder appends approaches to the ledger.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, rec domain.OutreachRecord) (domain.OutreachRecord, error)
}

// PerformanceReader feeds the quota controller.
type PerformanceReader interface {
	RecentPerformance(ctx context.Context, days int) (reports.Performance, error)
}

var (
	_ Scorer            = (*scoring.Engine)(nil)
	_ BatchSelector     = (*selector.Selector)(nil)
	_ VariantTracker    = (*experiments.Tracker)(nil)
	_ AttemptRecorder   = (*ledger.Service)(nil)
	_ PerformanceReader = (*reports.Service)(nil)
)

// CostPerLead feeds the ROI estimate on the approval summary.
const CostPerLead = 5

type Options struct {
	SendDelayMin          time.Duration
	SendDelayMax          time.Duration
	ReinforcementAfter    time.Duration
	UrgencyAfter          time.Duration
	StageRetryDelay       time.Duration
	MaxStageAttempts      int
	FollowupBatch         int
	Unattended            bool
	ExperimentID          string
	PerformanceWindowDays int
	PopulationRetries     uint64
	PopulationRetryDelay  time.Duration
	// OnSend, when set, observes every send result as it is produced.
	OnSend func(domain.SendResult)
}

func DefaultOptions() Options {
	return Options{
		SendDelayMin:          2 * time.Second,
		SendDelayMax:          5 * time.Second,
		ReinforcementAfter:    48 * time.Hour,
		UrgencyAfter:          72 * time.Hour,
		StageRetryDelay:       time.Hour,
		MaxStageAttempts:      3,
		FollowupBatch:         50,
		PerformanceWindowDays: 7,
		PopulationRetries:     3,
		PopulationRetryDelay:  2 * time.Second,
	}
}

type Deps struct {
	Population  ports.PopulationSource
	Sender      ports.Sender
	Offers      ports.OfferGenerator
	Messages    ports.MessageComposer
	Scorer      Scorer
	Selector    BatchSelector
	Experiments VariantTracker
	Ledger      AttemptRecorder
	Performance PerformanceReader
	Batches     ports.BatchRepository
	Sequences   ports.SequenceRepository
	Events      ports.EventPublisher
	Clock       clockwork.Clock
	Rand        *random.Source
	Log         *zap.Logger
}

// Orchestrator owns the run lock: one daily run, approval dispatch or
// follow-up pass executes at a time, so sends never interleave.
type Orchestrator struct {
	Deps
	opts Options
	run  sync.Mutex
}

func New(deps Deps, opts Options) *Orchestrator {
	if deps.Events == nil {
		deps.Events = ports.NopPublisher{}
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Orchestrator{Deps: deps, opts: opts}
}

// RunResult is what one daily run produced.
type RunResult struct {
	Batch    domain.Batch           `json:"batch"`
	Dispatch *domain.DispatchResult `json:"dispatch,omitempty"`
}

// RunDaily prepares today's batch and, in unattended mode, dispatches all of
// it without waiting for approval.
func (o *Orchestrator) RunDaily(ctx context.Context) (RunResult, error) {
	if !o.run.TryLock() {
		return RunResult{}, domain.ErrRunInProgress
	}
	defer o.run.Unlock()

	batch, err := o.prepare(ctx)
	if err != nil {
		return RunResult{}, err
	}
	res := RunResult{Batch: batch}
	if !o.opts.Unattended || len(batch.Items) == 0 {
		return res, nil
	}
	dispatch, err := o.approve(ctx, batch.ID, ApproveAll(batch))
	if err != nil {
		return res, err
	}
	res.Dispatch = &dispatch
	res.Batch, err = o.Batches.GetBatch(ctx, batch.ID)
	return res, err
}

// PrepareDailyBatch runs the pipeline up to the approval gate.
func (o *Orchestrator) PrepareDailyBatch(ctx context.Context) (domain.Batch, error) {
	if !o.run.TryLock() {
		return domain.Batch{}, domain.ErrRunInProgress
	}
	defer o.run.Unlock()
	return o.prepare(ctx)
}

func (o *Orchestrator) prepare(ctx context.Context) (domain.Batch, error) {
	started := o.Clock.Now()
	population, dropped := o.fetchPopulation(ctx)
	o.adaptQuota(ctx)

	scored := o.Scorer.ScoreAll(population)
	sel, err := o.Selector.SelectDailyBatch(ctx, scored, 0)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("select daily batch: %w", err)
	}
	sel.Stats.Total += dropped
	sel.Stats.ExcludedInvalidPhone += dropped

	items := make([]domain.BatchItem, 0, len(sel.Batch))
	experimentOpen := o.opts.ExperimentID != ""
	for _, sc := range sel.Batch {
		item := o.enrich(ctx, sc, &experimentOpen)
		items = append(items, item)
	}

	now := o.Clock.Now()
	batch := domain.Batch{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.BatchPendingApproval,
		Items:     items,
		Stats:     sel.Stats,
		Summary:   summarize(sel),
	}
	if err := o.Batches.SaveBatch(ctx, batch); err != nil {
		return domain.Batch{}, fmt.Errorf("save batch: %w", err)
	}
	o.Log.Info("daily batch prepared",
		zap.String("batch_id", batch.ID),
		zap.Int("population", sel.Stats.Total),
		zap.Int("selected", len(items)),
		zap.Int("mean_score", sel.Stats.MeanScore),
		zap.Duration("took", now.Sub(started)))
	if err := o.Events.Publish(ctx, ports.EventBatch, batch.ID, batch.Summary); err != nil {
		o.Log.Warn("publish batch event failed", zap.Error(err))
	}
	return batch, nil
}

// fetchPopulation retries the source and degrades to an empty population
// when it stays down. Rows without a usable phone never enter the pipeline.
func (o *Orchestrator) fetchPopulation(ctx context.Context) ([]domain.CustomerRecord, int) {
	var rows []domain.CustomerRecord
	backoff := retry.WithMaxRetries(o.opts.PopulationRetries, retry.NewConstant(max(o.opts.PopulationRetryDelay, time.Millisecond)))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		rows, err = o.Population.FetchInactive(ctx)
		if err != nil {
			o.Log.Warn("population fetch failed", zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		o.Log.Error("population unavailable, continuing with an empty population", zap.Error(err))
		return nil, 0
	}
	valid := rows[:0:0]
	dropped := 0
	for _, c := range rows {
		phone := domain.NormalizePhone(c.Phone)
		if !domain.ValidPhone(phone) {
			dropped++
			continue
		}
		c.Phone = phone
		valid = append(valid, c)
	}
	return valid, dropped
}

func (o *Orchestrator) adaptQuota(ctx context.Context) {
	if o.Performance == nil || o.opts.PerformanceWindowDays <= 0 {
		return
	}
	perf, err := o.Performance.RecentPerformance(ctx, o.opts.PerformanceWindowDays)
	if err != nil {
		o.Log.Warn("recent performance unavailable, keeping quota", zap.Error(err))
		return
	}
	if perf.Approached == 0 {
		return
	}
	o.Selector.AdaptQuota(perf.Rate)
}

// enrich attaches offer, template and message. An active experiment variant
// overrides the recommended template and offer.
func (o *Orchestrator) enrich(ctx context.Context, sc domain.ScoredCustomer, experimentOpen *bool) domain.BatchItem {
	template := sc.Score.Recommendation.Template
	offer := o.Offers.OfferFor(sc)
	var variantID string

	if *experimentOpen && o.Experiments != nil {
		v, err := o.Experiments.AssignVariant(ctx, o.opts.ExperimentID)
		switch {
		case err == nil:
			variantID = v.ID
			if v.Template != "" {
				template = v.Template
			}
			if v.Offer != "" {
				if byKey, ok := o.Offers.ByKey(v.Offer); ok {
					offer = byKey
				} else {
					offer.Key = v.Offer
				}
			}
		case errors.Is(err, domain.ErrExperimentFinalized), errors.Is(err, domain.ErrExperimentInactive), errors.Is(err, domain.ErrNotFound):
			o.Log.Info("experiment not assigning variants", zap.String("experiment_id", o.opts.ExperimentID), zap.Error(err))
			*experimentOpen = false
		default:
			o.Log.Warn("variant assignment failed", zap.String("phone", sc.Customer.Phone), zap.Error(err))
		}
	}
	return domain.BatchItem{
		Customer:  sc.Customer,
		Score:     sc.Score,
		Offer:     offer,
		Template:  template,
		Message:   o.Messages.Compose(sc, template, offer),
		VariantID: variantID,
	}
}

func summarize(sel selector.Selection) domain.ApprovalSummary {
	n := sel.Stats.Selected
	roi := 0
	if n > 0 {
		roi = int(math.Round(float64(sel.ExpectedRevenue) / float64(n*CostPerLead) * 100))
	}
	return domain.ApprovalSummary{
		Date:                sel.Date,
		TotalLeads:          n,
		Distribution:        sel.Stats.TierDistribution,
		MeanScore:           sel.Stats.MeanScore,
		ExpectedConversions: sel.ExpectedConversions,
		ExpectedRevenue:     sel.ExpectedRevenue,
		ROIPercent:          roi,
	}
}

// ScorePopulation scores the current population without selecting.
func (o *Orchestrator) ScorePopulation(ctx context.Context) (scoring.Summary, error) {
	population, _ := o.fetchPopulation(ctx)
	return scoring.Summarize(o.Scorer.ScoreAll(population)), nil
}

// LatestBatch and Batch expose parked batches to the approval dashboard.
func (o *Orchestrator) LatestBatch(ctx context.Context) (domain.Batch, error) {
	return o.Batches.LatestBatch(ctx)
}

func (o *Orchestrator) Batch(ctx context.Context, id string) (domain.Batch, error) {
	return o.Batches.GetBatch(ctx, id)
}

// pause waits between consecutive sends. It returns early with the context
// error when cancelled.
func (o *Orchestrator) pause(ctx context.Context) error {
	d := o.Rand.Duration(o.opts.SendDelayMin, o.opts.SendDelayMax)
	if d <= 0 {
		return ctx.Err()
	}
	t := o.Clock.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}
