package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reactivation/internal/adapters/memory"
	"reactivation/internal/domain"
)

type members []domain.CustomerRecord

func (m members) FetchInactive(context.Context) ([]domain.CustomerRecord, error) {
	return append([]domain.CustomerRecord(nil), m...), nil
}

type brokenPopulation struct{}

func (brokenPopulation) FetchInactive(context.Context) ([]domain.CustomerRecord, error) {
	return nil, errors.New("mysql: connection refused")
}

func lapsed(name, phone, reason string, days int) domain.CustomerRecord {
	return domain.CustomerRecord{
		Name:        name,
		Phone:       phone,
		Plan:        "Mensal",
		EndDate:     now.AddDate(0, 0, -days),
		ChurnReason: reason,
	}
}

func populationService(rows ...domain.CustomerRecord) *Service {
	store := memory.New()
	return New(members(rows), store, store, store, store, store, clockwork.NewFakeClockAt(now))
}

func TestClassifySegment(t *testing.T) {
	cases := map[int]Segment{
		0:   SegmentUltraRecent,
		7:   SegmentUltraRecent,
		8:   SegmentVeryRecent,
		15:  SegmentVeryRecent,
		30:  SegmentRecent,
		31:  SegmentModerate,
		60:  SegmentMedium,
		90:  SegmentOld,
		91:  SegmentVeryOld,
		400: SegmentVeryOld,
	}
	for days, want := range cases {
		assert.Equal(t, want, ClassifySegment(days), "days %d", days)
	}
}

func TestInactivity(t *testing.T) {
	svc := populationService(
		lapsed("Velho", "66900000005", "", 100),
		lapsed("Ana", "(66) 90000-0001", "", 3),
		lapsed("Carla", "66900000003", "", 20),
		domain.CustomerRecord{Name: "Sem Data", Phone: "66900000009"},
		lapsed("Bruno", "66900000002", "", 10),
		lapsed("Davi", "66900000004", "", 40),
	)
	rep, err := svc.Inactivity(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Total)
	assert.Equal(t, 1, rep.Undated)
	require.Len(t, rep.Segments, 7)
	counts := map[Segment]int{}
	for _, g := range rep.Segments {
		counts[g.Segment] = g.Count
		assert.Len(t, g.Members, g.Count)
	}
	assert.Equal(t, map[Segment]int{
		SegmentUltraRecent: 1, SegmentVeryRecent: 1, SegmentRecent: 1, SegmentModerate: 1,
		SegmentMedium: 0, SegmentOld: 0, SegmentVeryOld: 1,
	}, counts)

	assert.Equal(t, 35, rep.Stats.MeanDays)
	assert.Equal(t, 20, rep.Stats.MedianDays)
	assert.Equal(t, 3, rep.Stats.HighPriority)
	assert.InDelta(t, 60.0, rep.Stats.HighPriorityPercent, 1e-9)
	assert.Equal(t, 1, rep.Stats.ByUrgency["HIGHEST"])
	assert.Equal(t, 0, rep.Stats.ByUrgency["LOW"])
	assert.Equal(t, "URGENT", rep.Stats.Recommendation.Kind)
	assert.Equal(t, 1, rep.Stats.Recommendation.ActWithinDays)

	var top []string
	for _, m := range rep.TopPriorities {
		top = append(top, m.Phone)
	}
	assert.Equal(t, []string{"66900000001", "66900000002", "66900000003"}, top)
	assert.Equal(t, now.AddDate(0, 0, -3).Format("2006-01-02"), rep.TopPriorities[0].ExitDate)
}

func TestInactivityMedian(t *testing.T) {
	svc := populationService(
		lapsed("A", "66900000001", "", 3),
		lapsed("B", "66900000002", "", 10),
		lapsed("C", "66900000003", "", 31),
		lapsed("D", "66900000004", "", 100),
		lapsed("E", "66900000005", "", 120),
		lapsed("F", "66900000006", "", 130),
		lapsed("G", "66900000007", "", 140),
	)
	rep, err := svc.Inactivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, rep.Stats.MedianDays)
	assert.Equal(t, "IMPORTANT", rep.Stats.Recommendation.Kind)

	svc = populationService(
		lapsed("A", "66900000001", "", 10),
		lapsed("B", "66900000002", "", 21),
		lapsed("C", "66900000003", "", 100),
		lapsed("D", "66900000004", "", 200),
	)
	rep, err = svc.Inactivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 61, rep.Stats.MedianDays)
}

func TestInactivityEmptyPopulation(t *testing.T) {
	rep, err := populationService().Inactivity(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Total)
	assert.Empty(t, rep.TopPriorities)
	assert.Equal(t, "ROUTINE", rep.Stats.Recommendation.Kind)

	store := memory.New()
	svc := New(brokenPopulation{}, store, store, store, store, store, clockwork.NewFakeClockAt(now))
	_, err = svc.Inactivity(context.Background())
	assert.Error(t, err)
}

func TestInactivitySegment(t *testing.T) {
	svc := populationService(
		lapsed("Ana", "66900000001", "", 20),
		lapsed("Bruno", "66900000002", "", 25),
		lapsed("Carla", "66900000003", "", 2),
	)
	g, err := svc.InactivitySegment(context.Background(), "recent")
	require.NoError(t, err)
	assert.Equal(t, SegmentRecent, g.Segment)
	assert.Equal(t, 2, g.Count)
	assert.Equal(t, 16, g.MinDays)
	assert.Equal(t, 30, g.MaxDays)

	_, err = svc.InactivitySegment(context.Background(), "ancient")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
