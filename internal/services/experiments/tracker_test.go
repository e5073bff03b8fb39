package experiments

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reactivation/internal/adapters/memory"
	"reactivation/internal/domain"
	"reactivation/internal/random"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newTracker(t *testing.T) (*Tracker, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(now)
	return New(memory.New(), clock, random.New(2024), zap.NewNop()), clock
}

func twoVariants() ExperimentSpec {
	return ExperimentSpec{
		Name: "anual vs avaliação",
		Variants: []VariantSpec{
			{Name: "A", Template: domain.TemplateLoyaltyWinback, Offer: domain.OfferAnnualPlan119},
			{Name: "B", Template: domain.TemplateGenericReturn, Offer: domain.OfferFreeAssessment},
		},
	}
}

func TestCreateExperimentValidates(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	_, err := tr.CreateExperiment(ctx, ExperimentSpec{Name: "x", Variants: []VariantSpec{{Name: "só"}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	spec := twoVariants()
	spec.Weights = []float64{1, -1}
	_, err = tr.CreateExperiment(ctx, spec)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	spec.Weights = []float64{0, 0}
	_, err = tr.CreateExperiment(ctx, spec)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)
	assert.Equal(t, exp.ID+"-v1", exp.Variants[0].ID)
	assert.Equal(t, now.Add(DefaultDuration), exp.EndsAt)
	assert.Equal(t, domain.ExperimentActive, exp.Status)
}

func TestAssignVariantEvenSplit(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	spec := twoVariants()
	spec.Weights = []float64{50, 50}
	exp, err := tr.CreateExperiment(ctx, spec)
	require.NoError(t, err)

	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		v, err := tr.AssignVariant(ctx, exp.ID)
		require.NoError(t, err)
		counts[v.ID]++
	}
	a, b := counts[exp.Variants[0].ID], counts[exp.Variants[1].ID]
	assert.Equal(t, n, a+b)
	assert.Less(t, math.Abs(float64(a-b))/n, 0.10)
}

func TestPick(t *testing.T) {
	w := []float64{1, 3}
	assert.Equal(t, 0, Pick(w, 0))
	assert.Equal(t, 0, Pick(w, 0.24))
	assert.Equal(t, 1, Pick(w, 0.25))
	assert.Equal(t, 1, Pick(w, 0.999))
	assert.Equal(t, 1, Pick([]float64{0, 1}, 0))
}

func TestAssignOutsideWindow(t *testing.T) {
	tr, clock := newTracker(t)
	ctx := context.Background()
	spec := twoVariants()
	spec.StartsAt = now.Add(24 * time.Hour)
	spec.EndsAt = now.Add(48 * time.Hour)
	exp, err := tr.CreateExperiment(ctx, spec)
	require.NoError(t, err)

	_, err = tr.AssignVariant(ctx, exp.ID)
	assert.True(t, errors.Is(err, domain.ErrExperimentInactive))

	clock.Advance(30 * time.Hour)
	_, err = tr.AssignVariant(ctx, exp.ID)
	assert.NoError(t, err)
}

func record(t *testing.T, tr *Tracker, variantID string, sends, conversions int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < sends; i++ {
		require.NoError(t, tr.RecordSend(ctx, variantID))
	}
	for i := 0; i < conversions; i++ {
		require.NoError(t, tr.RecordConversion(ctx, variantID, decimal.NewFromInt(119)))
	}
}

func TestFinalizePicksHigherRate(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)

	record(t, tr, exp.Variants[0].ID, 100, 10)
	record(t, tr, exp.Variants[1].ID, 100, 20)

	res, err := tr.Finalize(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.Variants[1].ID, res.Winner.ID)
	assert.Equal(t, domain.ExperimentFinalized, res.Experiment.Status)
	assert.Equal(t, 200, res.Report.TotalSends)
	assert.InDelta(t, 15.0, res.Report.RatePercent, 1e-9)
	assert.True(t, decimal.NewFromInt(119*30).Equal(res.Report.TotalRevenue))
	assert.Contains(t, res.Report.Recommendation, "Usar B preferencialmente")
	assert.True(t, res.Report.Variants[1].Winner)
}

func TestFinalizeTieKeepsFirst(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)

	record(t, tr, exp.Variants[0].ID, 10, 1)
	record(t, tr, exp.Variants[1].ID, 20, 2)

	res, err := tr.Finalize(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.Variants[0].ID, res.Winner.ID)
	assert.Contains(t, res.Report.Recommendation, "Resultados similares")
}

func TestFinalizedExperimentIsImmutable(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)
	record(t, tr, exp.Variants[0].ID, 5, 1)

	_, err = tr.Finalize(ctx, exp.ID)
	require.NoError(t, err)

	_, err = tr.Finalize(ctx, exp.ID)
	assert.True(t, errors.Is(err, domain.ErrExperimentFinalized))
	assert.True(t, errors.Is(tr.RecordSend(ctx, exp.Variants[0].ID), domain.ErrExperimentFinalized))
	assert.True(t, errors.Is(tr.RecordConversion(ctx, exp.Variants[0].ID, decimal.NewFromInt(1)), domain.ErrExperimentFinalized))
	_, err = tr.AssignVariant(ctx, exp.ID)
	assert.True(t, errors.Is(err, domain.ErrExperimentFinalized))

	got, err := tr.Get(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Variants[0].Sends)
	assert.Equal(t, 1, got.Variants[0].Conversions)
}

func TestConcurrentSendsAreCounted(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.RecordSend(ctx, exp.Variants[1].ID)
		}()
	}
	wg.Wait()
	got, err := tr.Get(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Variants[1].Sends)
}

func TestReportWhileRunning(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	exp, err := tr.CreateExperiment(ctx, twoVariants())
	require.NoError(t, err)

	rep, err := tr.Report(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.RatePercent)
	assert.Equal(t, "Teste ainda em andamento. Aguardar mais dados.", rep.Recommendation)
	assert.True(t, decimal.Zero.Equal(rep.Variants[0].RevenuePerSend))
}
