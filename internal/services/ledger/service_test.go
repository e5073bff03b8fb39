package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reactivation/internal/adapters/memory"
	"reactivation/internal/domain"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type creditSpy struct {
	variants []string
	err      error
}

func (c *creditSpy) RecordConversion(_ context.Context, variantID string, _ decimal.Decimal) error {
	c.variants = append(c.variants, variantID)
	return c.err
}

func setup(t *testing.T) (*Service, *memory.Store, *creditSpy, *clockwork.FakeClock) {
	t.Helper()
	store := memory.New()
	clock := clockwork.NewFakeClockAt(now)
	spy := &creditSpy{}
	return New(store, store, store, spy, nil, clock, zap.NewNop()), store, spy, clock
}

func TestRecordAttemptFillsDefaults(t *testing.T) {
	svc, store, _, _ := setup(t)
	rec, err := svc.RecordAttempt(context.Background(), domain.OutreachRecord{Phone: "66999991111", Stage: domain.StageOpening})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, now, rec.At)
	assert.Equal(t, ChannelWhatsApp, rec.Channel)
	assert.Equal(t, domain.OutcomeSent, rec.Outcome)

	recs, err := store.OutreachByPhone(context.Background(), "66999991111")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecordConversionCorrelatesLastApproach(t *testing.T) {
	ctx := context.Background()
	svc, store, spy, clock := setup(t)

	_, err := svc.RecordAttempt(ctx, domain.OutreachRecord{
		Phone: "66999991111", Name: "Ana", Score: 82, Template: domain.TemplateLoyaltyWinback,
		Offer: domain.OfferAnnualPlan119, VariantID: "exp-v2", Stage: domain.StageOpening,
	})
	require.NoError(t, err)
	_, err = svc.RecordAttempt(ctx, domain.OutreachRecord{Phone: "66999991111", Outcome: domain.OutcomeFailed})
	require.NoError(t, err)
	require.NoError(t, store.UpsertLead(ctx, domain.HotLead{Phone: "66999991111", Status: domain.LeadPending}))

	clock.Advance(3 * 24 * time.Hour)
	conv, err := svc.RecordConversion(ctx, ConversionInput{Phone: "66 99999-1111", Plan: "Anual", Value: decimal.NewFromInt(119)})
	require.NoError(t, err)
	assert.Equal(t, 3, conv.DaysToConvert)
	assert.Equal(t, "exp-v2", conv.VariantID)
	assert.Equal(t, domain.TemplateLoyaltyWinback, conv.Template)
	assert.Equal(t, 82, conv.Score)
	assert.Equal(t, "Ana", conv.Name)
	assert.Equal(t, SourceReactivation, conv.Source)
	assert.Equal(t, []string{"exp-v2"}, spy.variants)

	recs, err := store.OutreachByPhone(ctx, "66999991111")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConverted, recs[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, recs[1].Outcome)

	lead, _, err := store.GetLead(ctx, "66999991111")
	require.NoError(t, err)
	assert.Equal(t, domain.LeadConverted, lead.Status)
}

func TestConversionSurvivesClosedExperiment(t *testing.T) {
	svc, _, spy, _ := setup(t)
	spy.err = domain.ErrExperimentFinalized
	conv, err := svc.RecordConversion(context.Background(), ConversionInput{Phone: "66999991111", VariantID: "x-v1", Value: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.Equal(t, "x-v1", conv.VariantID)
}

func TestRecordConversionValidates(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.RecordConversion(context.Background(), ConversionInput{Phone: "1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidPhone))
	_, err = svc.RecordConversion(context.Background(), ConversionInput{Phone: "66999991111", Value: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMarkContacted(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := setup(t)
	require.NoError(t, store.UpsertLead(ctx, domain.HotLead{Phone: "66999991111", Status: domain.LeadPending}))

	pending, err := svc.PendingLeads(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	lead, err := svc.MarkContacted(ctx, "66999991111", "ligou, volta segunda")
	require.NoError(t, err)
	assert.Equal(t, domain.LeadContacted, lead.Status)

	pending, err = svc.PendingLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.MarkContacted(ctx, "66999990000", "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
