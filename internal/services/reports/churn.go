package reports

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

// AnnualOffer is the price a recovered member is expected to pay.
var AnnualOffer = decimal.NewFromInt(119)

const (
	trendDays         = 90
	criticalMonthly   = 30
	criticalUltra     = 10
	dominantReasonPct = 40
)

type ExitUrgency string

const (
	UrgencyUltra    ExitUrgency = "ULTRA_URGENT"
	UrgencyVery     ExitUrgency = "VERY_URGENT"
	UrgencyUrgent   ExitUrgency = "URGENT"
	UrgencyModerate ExitUrgency = "MODERATE"
)

var exitBands = []struct {
	maxDays   int
	urgency   ExitUrgency
	priority  string
	expected  int
	actWithin string
}{
	{7, UrgencyUltra, "CRITICAL", 35, "24h"},
	{15, UrgencyVery, "VERY_HIGH", 30, "48h"},
	{30, UrgencyUrgent, "HIGH", 25, "72h"},
}

// ReasonAnalysis describes how recoverable an exit reason is.
type ReasonAnalysis struct {
	Category       domain.ChurnReason `json:"category"`
	Recoverability string             `json:"recoverability"`
	Approach       string             `json:"approach"`
	ExpectedRange  string             `json:"expectedRange"`
}

var reasonAnalyses = map[domain.ChurnReason]ReasonAnalysis{
	domain.ReasonFinancial:      {Recoverability: "HIGH", Approach: "annual plan at R$119, stress the savings", ExpectedRange: "40-45%"},
	domain.ReasonTimeConstraint: {Recoverability: "HIGH", Approach: "flexible hours and 30 minute workouts", ExpectedRange: "30-35%"},
	domain.ReasonHealth:         {Recoverability: "MEDIUM", Approach: "progressive return with supervision", ExpectedRange: "25-30%"},
	domain.ReasonDissatisfied:   {Recoverability: "LOW", Approach: "show the improvements made since", ExpectedRange: "15-20%"},
	domain.ReasonRelocation:     {Recoverability: "VERY_LOW", Approach: "stop approaching", ExpectedRange: "0-5%"},
}

// AnalyzeReason normalizes a free-text exit reason and rates it.
func AnalyzeReason(raw string) ReasonAnalysis {
	reason := domain.NormalizeChurnReason(raw)
	a, ok := reasonAnalyses[reason]
	if !ok {
		a = ReasonAnalysis{Recoverability: "MEDIUM", Approach: "standard offer, find out the real reason", ExpectedRange: "20-25%"}
	}
	a.Category = reason
	return a
}

type Exit struct {
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Plan            string         `json:"plan"`
	ExitDate        string         `json:"exitDate"`
	DaysSince       int            `json:"daysSince"`
	Urgency         ExitUrgency    `json:"urgency"`
	Priority        string         `json:"priority"`
	ExpectedPercent int            `json:"expectedPercent"`
	ActWithin       string         `json:"actWithin"`
	Reason          ReasonAnalysis `json:"reason"`
}

func classifyExit(days int) (ExitUrgency, string, int, string) {
	for _, b := range exitBands {
		if days <= b.maxDays {
			return b.urgency, b.priority, b.expected, b.actWithin
		}
	}
	return UrgencyModerate, "MEDIUM", 20, "1w"
}

type ExitStats struct {
	Total               int                        `json:"total"`
	ByUrgency           map[ExitUrgency]int        `json:"byUrgency"`
	ByReason            map[domain.ChurnReason]int `json:"byReason"`
	MeanExpectedPercent int                        `json:"meanExpectedPercent"`
	ExpectedConversions int                        `json:"expectedConversions"`
	PotentialRevenue    decimal.Decimal            `json:"potentialRevenue"`
	HighRecoverability  int                        `json:"highRecoverability"`
}

type RecentExits struct {
	Days           int            `json:"days"`
	Total          int            `json:"total"`
	Exits          []Exit         `json:"exits"`
	Stats          ExitStats      `json:"stats"`
	Recommendation Recommendation `json:"recommendation"`
}

// RecentExits lists members who left within the last days, freshest
// first, with the urgency of each and an overall recommendation.
func (s *Service) RecentExits(ctx context.Context, days int) (RecentExits, error) {
	if _, _, err := s.window(days); err != nil {
		return RecentExits{}, err
	}
	rows, err := s.population.FetchInactive(ctx)
	if err != nil {
		return RecentExits{}, fmt.Errorf("fetch population: %w", err)
	}
	now := s.clock.Now()
	out := RecentExits{Days: days, Exits: []Exit{}}
	for _, c := range rows {
		exit := c.ExitDate()
		since := domain.DaysBetween(exit, now)
		if since < 0 || since >= days {
			continue
		}
		e := Exit{
			Name:      c.Name,
			Phone:     domain.NormalizePhone(c.Phone),
			Plan:      c.Plan,
			ExitDate:  exit.Format("2006-01-02"),
			DaysSince: since,
			Reason:    AnalyzeReason(c.ChurnReason),
		}
		e.Urgency, e.Priority, e.ExpectedPercent, e.ActWithin = classifyExit(since)
		out.Exits = append(out.Exits, e)
	}
	sort.SliceStable(out.Exits, func(i, j int) bool { return out.Exits[i].DaysSince < out.Exits[j].DaysSince })
	out.Total = len(out.Exits)
	out.Stats = exitStats(out.Exits)
	out.Recommendation = exitRecommendation(out.Stats)
	return out, nil
}

func exitStats(exits []Exit) ExitStats {
	st := ExitStats{
		Total:            len(exits),
		ByUrgency:        map[ExitUrgency]int{},
		ByReason:         map[domain.ChurnReason]int{},
		PotentialRevenue: decimal.Zero,
	}
	if st.Total == 0 {
		return st
	}
	sum := 0
	for _, e := range exits {
		st.ByUrgency[e.Urgency]++
		st.ByReason[e.Reason.Category]++
		sum += e.ExpectedPercent
		if e.Reason.Recoverability == "HIGH" {
			st.HighRecoverability++
		}
	}
	st.MeanExpectedPercent = int(math.Round(float64(sum) / float64(st.Total)))
	st.ExpectedConversions = int(math.Round(float64(st.MeanExpectedPercent) / 100 * float64(st.Total)))
	st.PotentialRevenue = AnnualOffer.Mul(decimal.NewFromInt(int64(st.ExpectedConversions)))
	return st
}

func exitRecommendation(st ExitStats) Recommendation {
	ultra := st.ByUrgency[UrgencyUltra]
	financial := st.ByReason[domain.ReasonFinancial]
	switch {
	case ultra >= criticalUltra:
		return Recommendation{
			Kind:          "CRITICAL",
			Action:        "EMERGENCY_CAMPAIGN",
			Message:       fmt.Sprintf("%d exits in the last 7 days, act immediately", ultra),
			ActWithinDays: 2,
			TargetPercent: 35,
		}
	case st.Total > 0 && financial*2 >= st.Total:
		return Recommendation{
			Kind:          "OPPORTUNITY",
			Action:        "AGGRESSIVE_FINANCIAL_CAMPAIGN",
			Message:       fmt.Sprintf("%d exits for financial reasons, high recovery possible", financial),
			ActWithinDays: 3,
			TargetPercent: 40,
		}
	default:
		return Recommendation{
			Kind:          "STANDARD",
			Action:        "REGULAR_CAMPAIGN",
			Message:       "recent exits at a normal level, keep the standard campaign",
			ActWithinDays: 7,
			TargetPercent: 25,
		}
	}
}

type TrendDirection string

const (
	TrendRising  TrendDirection = "RISING"
	TrendFalling TrendDirection = "FALLING"
	TrendStable  TrendDirection = "STABLE"
)

type ChurnAlert struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type ChurnTrend struct {
	Days        int            `json:"days"`
	TotalExits  int            `json:"totalExits"`
	ByMonth     map[string]int `json:"byMonth"`
	Direction   TrendDirection `json:"direction"`
	MonthlyMean int            `json:"monthlyMean"`
	Alerts      []ChurnAlert   `json:"alerts"`
}

// ChurnTrend groups the exits of the last 90 days by month and compares
// the two latest months.
func (s *Service) ChurnTrend(ctx context.Context) (ChurnTrend, error) {
	rows, err := s.population.FetchInactive(ctx)
	if err != nil {
		return ChurnTrend{}, fmt.Errorf("fetch population: %w", err)
	}
	now := s.clock.Now()
	tr := ChurnTrend{Days: trendDays, ByMonth: map[string]int{}, Direction: TrendStable, Alerts: []ChurnAlert{}}
	reasons := map[string]int{}
	for _, c := range rows {
		exit := c.ExitDate()
		since := domain.DaysBetween(exit, now)
		if since < 0 || since >= trendDays {
			continue
		}
		tr.TotalExits++
		tr.ByMonth[exit.Format("2006-01")]++
		reasons[string(domain.NormalizeChurnReason(c.ChurnReason))]++
	}
	tr.MonthlyMean = int(math.Round(float64(tr.TotalExits) / 3))

	months := make([]string, 0, len(tr.ByMonth))
	for m := range tr.ByMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if n := len(months); n >= 2 {
		last, prev := tr.ByMonth[months[n-1]], tr.ByMonth[months[n-2]]
		switch {
		case last > prev:
			tr.Direction = TrendRising
		case last < prev:
			tr.Direction = TrendFalling
		}
	}
	if n := len(months); n > 0 && tr.ByMonth[months[n-1]] > criticalMonthly {
		tr.Alerts = append(tr.Alerts, ChurnAlert{
			Kind:    "CRITICAL",
			Message: fmt.Sprintf("%d exits in %s, above normal", tr.ByMonth[months[n-1]], months[n-1]),
			Action:  "investigate the root cause now",
		})
	}
	if top := best(reasons); top != "" && reasons[top]*100 > tr.TotalExits*dominantReasonPct {
		tr.Alerts = append(tr.Alerts, ChurnAlert{
			Kind:    "IMPORTANT",
			Message: fmt.Sprintf("%d exits for %s (%d%%)", reasons[top], top, int(math.Round(float64(reasons[top])*100/float64(tr.TotalExits)))),
			Action:  "run an offer aimed at this reason",
		})
	}
	return tr, nil
}
