package scoring

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reactivation/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEngine() *Engine {
	return New(clockwork.NewFakeClockAt(now))
}

func TestScoreBestCase(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{
		Name:        "Ana Souza",
		Phone:       "66999991111",
		Plan:        "Clube Full",
		StartDate:   day(2024, 1, 1),
		EndDate:     day(2025, 6, 10),
		ChurnReason: "Financeiro",
		Age:         30,
	})
	assert.Equal(t, domain.SubScores{Recency: 10, PlanValue: 10, Tenure: 10, ChurnReason: 10, AgeBand: 10}, res.SubScores)
	assert.Equal(t, 100, res.Total)
	assert.Equal(t, domain.TierVeryHigh, res.Tier)
	assert.Equal(t, 5, res.DaysInactive)
	assert.Equal(t, domain.TemplateUrgentFinancial, res.Recommendation.Template)
	assert.Equal(t, domain.OfferAnnualDiscount, res.Recommendation.Offer)
	assert.Equal(t, domain.TimingImmediate, res.Recommendation.Timing)
}

func TestScoreMissingFieldsFallBack(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{Name: "Sem Dados", Phone: "66999990000"})
	// Blank plan and reason score as unknown, not neutral.
	assert.Equal(t, domain.SubScores{Recency: 5, PlanValue: 3, Tenure: 5, ChurnReason: 6, AgeBand: 5}, res.SubScores)
	assert.Equal(t, 50, res.Total)
	assert.Equal(t, -1, res.DaysInactive)
	// Unknown dates are never treated as a recent exit.
	assert.Equal(t, domain.TemplateLoyaltyWinback, res.Recommendation.Template)
}

func TestScoreTimeConstraintRecent(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{
		Plan:         "Prata",
		StartDate:    day(2024, 11, 1),
		EndDate:      day(2025, 5, 20),
		LastActivity: day(2025, 5, 26),
		ChurnReason:  "falta de tempo",
		Age:          22,
	})
	assert.Equal(t, 20, res.DaysInactive)
	assert.Equal(t, domain.SubScores{Recency: 8, PlanValue: 6, Tenure: 8, ChurnReason: 7, AgeBand: 8}, res.SubScores)
	assert.Equal(t, 73, res.Total)
	assert.Equal(t, domain.TierHigh, res.Tier)
	assert.Equal(t, domain.TemplateFlexibility, res.Recommendation.Template)
	assert.Equal(t, domain.TimingNextDay, res.Recommendation.Timing)
}

func TestScoreRoundsHalfUp(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{
		Plan:         "Bronze",
		StartDate:    day(2025, 1, 1),
		EndDate:      day(2025, 3, 1),
		LastActivity: day(2025, 5, 6),
		ChurnReason:  "foi para outra academia",
		Age:          70,
	})
	assert.Equal(t, 40, res.DaysInactive)
	assert.Equal(t, domain.SubScores{Recency: 6, PlanValue: 4, Tenure: 4, ChurnReason: 2, AgeBand: 3}, res.SubScores)
	assert.Equal(t, 38, res.Total)
	assert.Equal(t, domain.TierLow, res.Tier)
	assert.Equal(t, domain.TemplateGenericReturn, res.Recommendation.Template)
	assert.Equal(t, domain.Timing72h, res.Recommendation.Timing)
}

func TestRecencyBuckets(t *testing.T) {
	cases := map[int]int{-1: 5, 0: 10, 7: 10, 8: 9, 15: 9, 30: 8, 45: 6, 60: 4, 90: 2, 91: 1, 400: 1}
	for days, want := range cases {
		assert.Equal(t, want, recencyScore(days), "days=%d", days)
	}
}

func TestPlanScore(t *testing.T) {
	cases := map[string]int{
		"CLUBE+FULL":   10,
		"Passaporte":   8,
		"prata":        6,
		"Bronze":       4,
		"Aula teste":   2,
		"Experimental": 2,
		"Gold":         3,
		"":             3,
	}
	for plan, want := range cases {
		assert.Equal(t, want, planScore(plan), plan)
	}
}

func TestAgeFromBirthDate(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{BirthDate: day(1995, 1, 1)})
	assert.Equal(t, 10, res.SubScores.AgeBand)
	assert.Equal(t, 5, ageScore(0))
	assert.Equal(t, 3, ageScore(17))
	assert.Equal(t, 5, ageScore(60))
}

func TestFutureDateIsMalformed(t *testing.T) {
	res := newEngine().Score(domain.CustomerRecord{EndDate: day(2026, 1, 1)})
	assert.Equal(t, -1, res.DaysInactive)
	assert.Equal(t, 5, res.SubScores.Recency)
}

func TestTotalAlwaysInRange(t *testing.T) {
	e := newEngine()
	plans := []string{"", "clube", "bronze", "x"}
	ages := []int{0, 10, 30, 200}
	ends := []time.Time{{}, day(2025, 6, 14), day(2020, 1, 1), day(2030, 1, 1)}
	for _, p := range plans {
		for _, a := range ages {
			for _, end := range ends {
				res := e.Score(domain.CustomerRecord{Plan: p, Age: a, EndDate: end, StartDate: day(2019, 1, 1)})
				require.GreaterOrEqual(t, res.Total, 0)
				require.LessOrEqual(t, res.Total, 100)
			}
		}
	}
}

func TestScoreAllIsStable(t *testing.T) {
	customers := []domain.CustomerRecord{
		{Name: "a"},
		{Name: "b", Plan: "clube", ChurnReason: "financeiro", EndDate: day(2025, 6, 14), Age: 30},
		{Name: "c"},
		{Name: "d"},
	}
	scored := newEngine().ScoreAll(customers)
	require.Len(t, scored, 4)
	names := []string{}
	for _, sc := range scored {
		names = append(names, sc.Customer.Name)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, names)

	sum := Summarize(scored)
	assert.Equal(t, 4, sum.Total)
	assert.Len(t, sum.Top, 4)
	assert.Equal(t, 3, sum.Distribution[domain.TierMedium])
	assert.Contains(t, sum.Distribution, domain.TierVeryLow)
}
