// Package scoring ranks lapsed members by how likely they are to come back.
package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"reactivation/internal/domain"
)

const (
	weightRecency     = 3
	weightPlan        = 2
	weightTenure      = 2
	weightChurnReason = 4
	weightAge         = 1
	weightTotal       = weightRecency + weightPlan + weightTenure + weightChurnReason + weightAge

	// neutral is used for a date or age factor whose input is missing or
	// malformed.
	neutral = 5
	// unknownPlan scores a plan that is blank or matches no known fragment.
	unknownPlan = 3

	// recentChurnDays bounds the "just left" recommendation rules.
	recentChurnDays = 30
	// winbackThreshold is the minimum total for the loyalty win-back rule.
	winbackThreshold = 50
)

var recencyBuckets = []struct {
	maxDays int
	score   int
}{
	{7, 10}, {15, 9}, {30, 8}, {45, 6}, {60, 4}, {90, 2},
}

var planScores = []struct {
	fragments []string
	score     int
}{
	{[]string{"clube", "full"}, 10},
	{[]string{"passaporte"}, 8},
	{[]string{"prata"}, 6},
	{[]string{"bronze"}, 4},
	{[]string{"experimental", "teste"}, 2},
}

var reasonScores = map[domain.ChurnReason]int{
	domain.ReasonFinancial:      10,
	domain.ReasonTimeConstraint: 7,
	domain.ReasonHealth:         5,
	domain.ReasonGoalReached:    4,
	domain.ReasonDissatisfied:   3,
	domain.ReasonCompetitor:     2,
	domain.ReasonRelocation:     1,
	domain.ReasonUnknown:        6,
}

// Engine scores customers against an injected clock so results are
// reproducible for a fixed "today".
type Engine struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

// Score never fails: incomplete records get a fallback sub-score for every
// factor they cannot support.
func (e *Engine) Score(c domain.CustomerRecord) domain.ScoreResult {
	now := e.clock.Now()
	reason := domain.NormalizeChurnReason(c.ChurnReason)
	days := daysInactive(c, now)

	sub := domain.SubScores{
		Recency:     recencyScore(days),
		PlanValue:   planScore(c.Plan),
		Tenure:      tenureScore(c),
		ChurnReason: reasonScore(reason),
		AgeBand:     ageScore(age(c, now)),
	}
	weighted := sub.Recency*weightRecency +
		sub.PlanValue*weightPlan +
		sub.Tenure*weightTenure +
		sub.ChurnReason*weightChurnReason +
		sub.AgeBand*weightAge
	total := int(math.Round(float64(weighted) / weightTotal * 10))

	return domain.ScoreResult{
		SubScores:      sub,
		Total:          total,
		Tier:           domain.TierFor(total),
		Recommendation: recommend(days, reason, total),
		DaysInactive:   days,
		Reason:         reason,
	}
}

// ScoreAll scores every customer and sorts by total descending. Equal totals
// keep their input order.
func (e *Engine) ScoreAll(customers []domain.CustomerRecord) []domain.ScoredCustomer {
	out := make([]domain.ScoredCustomer, 0, len(customers))
	for _, c := range customers {
		out = append(out, domain.ScoredCustomer{Customer: c, Score: e.Score(c)})
	}
	SortByScore(out)
	return out
}

// SortByScore is a stable descending sort on the total.
func SortByScore(scored []domain.ScoredCustomer) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Total > scored[j].Score.Total
	})
}

// daysInactive returns whole days since the member went inactive, or -1
// when no usable date exists.
func daysInactive(c domain.CustomerRecord, now time.Time) int {
	return domain.DaysBetween(c.InactiveSince(), now)
}

func recencyScore(days int) int {
	if days < 0 {
		return neutral
	}
	for _, b := range recencyBuckets {
		if days <= b.maxDays {
			return b.score
		}
	}
	return 1
}

func planScore(plan string) int {
	p := domain.Fold(plan)
	for _, ps := range planScores {
		for _, f := range ps.fragments {
			if strings.Contains(p, f) {
				return ps.score
			}
		}
	}
	// Missing and unrecognised plans both count as unknown.
	return unknownPlan
}

func tenureScore(c domain.CustomerRecord) int {
	end := c.EndDate
	if end.IsZero() {
		end = c.LastActivity
	}
	if c.StartDate.IsZero() || end.IsZero() || end.Before(c.StartDate) {
		return neutral
	}
	switch m := monthsBetween(c.StartDate, end); {
	case m >= 12:
		return 10
	case m >= 6:
		return 8
	case m >= 3:
		return 6
	case m >= 1:
		return 4
	default:
		return 2
	}
}

// monthsBetween counts whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// reasonScore treats a blank reason like any unmatched one.
func reasonScore(reason domain.ChurnReason) int {
	return reasonScores[reason]
}

// age prefers the recorded age and falls back to the birth date. Zero
// means unknown.
func age(c domain.CustomerRecord, now time.Time) int {
	if c.Age > 0 {
		return c.Age
	}
	if c.BirthDate.IsZero() || c.BirthDate.After(now) {
		return 0
	}
	years := now.Year() - c.BirthDate.Year()
	if now.YearDay() < c.BirthDate.YearDay() {
		years--
	}
	return years
}

func ageScore(age int) int {
	switch {
	case age <= 0 || age > 120:
		return neutral
	case age >= 26 && age <= 35:
		return 10
	case age >= 36 && age <= 45:
		return 9
	case age >= 18 && age <= 25:
		return 8
	case age >= 46 && age <= 55:
		return 7
	case age >= 56 && age <= 65:
		return 5
	default:
		return 3
	}
}

// recommend walks the rule chain in fixed order; the first match wins. An
// unknown churn date never counts as recent.
func recommend(days int, reason domain.ChurnReason, total int) domain.Recommendation {
	recent := days >= 0 && days <= recentChurnDays
	switch {
	case recent && reason == domain.ReasonFinancial:
		return domain.Recommendation{
			Template: domain.TemplateUrgentFinancial,
			Offer:    domain.OfferAnnualDiscount,
			Timing:   domain.TimingImmediate,
			Reason:   "recent exit for financial reasons",
		}
	case recent && reason == domain.ReasonTimeConstraint:
		return domain.Recommendation{
			Template: domain.TemplateFlexibility,
			Offer:    domain.OfferFreeFirstWeek,
			Timing:   domain.TimingNextDay,
			Reason:   "recent exit for lack of time",
		}
	case total >= winbackThreshold:
		return domain.Recommendation{
			Template: domain.TemplateLoyaltyWinback,
			Offer:    domain.OfferAnnualPlan119,
			Timing:   domain.Timing24to48h,
			Reason:   "high reactivation potential",
		}
	default:
		return domain.Recommendation{
			Template: domain.TemplateGenericReturn,
			Offer:    domain.OfferFreeAssessment,
			Timing:   domain.Timing72h,
			Reason:   "standard return approach",
		}
	}
}
