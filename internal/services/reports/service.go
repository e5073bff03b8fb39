// Package reports computes read-only aggregates over the ledger and the
// lapsed-member population.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

// CostPerLead is the estimated cost of one approach, used for ROI.
var CostPerLead = decimal.NewFromInt(5)

type Service struct {
	population  ports.PopulationSource
	outreach    ports.OutreachRepository
	replies     ports.ReplyRepository
	conversions ports.ConversionRepository
	leads       ports.LeadRepository
	blacklist   ports.BlacklistRepository
	clock       clockwork.Clock
}

func New(population ports.PopulationSource, outreach ports.OutreachRepository, replies ports.ReplyRepository, conversions ports.ConversionRepository,
	leads ports.LeadRepository, blacklist ports.BlacklistRepository, clock clockwork.Clock) *Service {
	return &Service{
		population:  population,
		outreach:    outreach,
		replies:     replies,
		conversions: conversions,
		leads:       leads,
		blacklist:   blacklist,
		clock:       clock,
	}
}

func (s *Service) window(days int) (time.Time, time.Time, error) {
	if days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: days must be positive", domain.ErrInvalidInput)
	}
	now := s.clock.Now()
	return now.AddDate(0, 0, -days), now, nil
}

type Performance struct {
	Days        int     `json:"days"`
	Approached  int     `json:"approached"`
	Conversions int     `json:"conversions"`
	Rate        float64 `json:"rate"`
}

// RecentPerformance is conversions over members opened in the window. Rate
// is zero when nobody was approached.
func (s *Service) RecentPerformance(ctx context.Context, days int) (Performance, error) {
	from, to, err := s.window(days)
	if err != nil {
		return Performance{}, err
	}
	recs, err := s.outreach.OutreachBetween(ctx, from, to)
	if err != nil {
		return Performance{}, err
	}
	convs, err := s.conversions.ConversionsBetween(ctx, from, to)
	if err != nil {
		return Performance{}, err
	}
	p := Performance{Days: days, Conversions: len(convs)}
	for _, r := range recs {
		if r.Stage == domain.StageOpening && r.Outcome.Delivered() {
			p.Approached++
		}
	}
	if p.Approached > 0 {
		p.Rate = float64(p.Conversions) / float64(p.Approached)
	}
	return p, nil
}

type History struct {
	Days         int            `json:"days"`
	Total        int            `json:"total"`
	Delivered    int            `json:"delivered"`
	Failed       int            `json:"failed"`
	UniquePhones int            `json:"uniquePhones"`
	MeanScore    int            `json:"meanScore"`
	PerDay       map[string]int `json:"perDay"`
	ByStage      map[string]int `json:"byStage"`
	ByOutcome    map[string]int `json:"byOutcome"`
	Blacklisted  int            `json:"blacklisted"`
}

func (s *Service) OutreachHistory(ctx context.Context, days int) (History, error) {
	from, to, err := s.window(days)
	if err != nil {
		return History{}, err
	}
	recs, err := s.outreach.OutreachBetween(ctx, from, to)
	if err != nil {
		return History{}, err
	}
	bl, err := s.blacklist.ListBlacklist(ctx)
	if err != nil {
		return History{}, err
	}
	h := History{
		Days:        days,
		Total:       len(recs),
		PerDay:      map[string]int{},
		ByStage:     map[string]int{},
		ByOutcome:   map[string]int{},
		Blacklisted: len(bl),
	}
	phones := map[string]bool{}
	scoreSum := 0
	for _, r := range recs {
		phones[r.Phone] = true
		h.PerDay[r.At.Format("2006-01-02")]++
		h.ByStage[string(r.Stage)]++
		h.ByOutcome[string(r.Outcome)]++
		scoreSum += r.Score
		if r.Outcome.Delivered() {
			h.Delivered++
		} else {
			h.Failed++
		}
	}
	h.UniquePhones = len(phones)
	if len(recs) > 0 {
		h.MeanScore = (scoreSum + len(recs)/2) / len(recs)
	}
	return h, nil
}

type ReplyStats struct {
	Days         int                   `json:"days"`
	Total        int                   `json:"total"`
	ByIntent     map[domain.Intent]int `json:"byIntent"`
	ResponseRate float64               `json:"responseRate"`
	PendingLeads int                   `json:"pendingLeads"`
}

func (s *Service) ReplyStats(ctx context.Context, days int) (ReplyStats, error) {
	from, to, err := s.window(days)
	if err != nil {
		return ReplyStats{}, err
	}
	replies, err := s.replies.RepliesBetween(ctx, from, to)
	if err != nil {
		return ReplyStats{}, err
	}
	recs, err := s.outreach.OutreachBetween(ctx, from, to)
	if err != nil {
		return ReplyStats{}, err
	}
	pending, err := s.leads.ListLeads(ctx, domain.LeadPending)
	if err != nil {
		return ReplyStats{}, err
	}
	st := ReplyStats{Days: days, Total: len(replies), ByIntent: map[domain.Intent]int{}, PendingLeads: len(pending)}
	for _, in := range domain.Intents {
		st.ByIntent[in] = 0
	}
	replied := map[string]bool{}
	for _, r := range replies {
		st.ByIntent[r.Intent]++
		replied[r.Phone] = true
	}
	approached := map[string]bool{}
	for _, r := range recs {
		if r.Outcome.Delivered() {
			approached[r.Phone] = true
		}
	}
	if len(approached) > 0 {
		answered := 0
		for p := range replied {
			if approached[p] {
				answered++
			}
		}
		st.ResponseRate = float64(answered) / float64(len(approached))
	}
	return st, nil
}

type ConversionStats struct {
	Days              int             `json:"days"`
	Total             int             `json:"total"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageTicket     decimal.Decimal `json:"averageTicket"`
	ByPlan            map[string]int  `json:"byPlan"`
	MeanDaysToConvert float64         `json:"meanDaysToConvert"`
	BestWeekday       string          `json:"bestWeekday"`
	BestTemplate      string          `json:"bestTemplate"`
	EstimatedCost     decimal.Decimal `json:"estimatedCost"`
	ROIPercent        int64           `json:"roiPercent"`
}

func (s *Service) ConversionStats(ctx context.Context, days int) (ConversionStats, error) {
	from, to, err := s.window(days)
	if err != nil {
		return ConversionStats{}, err
	}
	convs, err := s.conversions.ConversionsBetween(ctx, from, to)
	if err != nil {
		return ConversionStats{}, err
	}
	recs, err := s.outreach.OutreachBetween(ctx, from, to)
	if err != nil {
		return ConversionStats{}, err
	}
	st := ConversionStats{
		Days:          days,
		Total:         len(convs),
		Revenue:       decimal.Zero,
		AverageTicket: decimal.Zero,
		ByPlan:        map[string]int{},
	}
	weekdays := map[string]int{}
	templates := map[string]int{}
	daysSum, withDays := 0, 0
	for _, c := range convs {
		st.Revenue = st.Revenue.Add(c.Value)
		st.ByPlan[c.Plan]++
		weekdays[c.At.Weekday().String()]++
		if c.Template != "" {
			templates[c.Template]++
		}
		if c.DaysToConvert > 0 {
			daysSum += c.DaysToConvert
			withDays++
		}
	}
	if st.Total > 0 {
		st.AverageTicket = st.Revenue.Div(decimal.NewFromInt(int64(st.Total))).Round(2)
	}
	if withDays > 0 {
		st.MeanDaysToConvert = float64(daysSum) / float64(withDays)
	}
	st.BestWeekday = best(weekdays)
	st.BestTemplate = best(templates)

	delivered := 0
	for _, r := range recs {
		if r.Stage == domain.StageOpening && r.Outcome.Delivered() {
			delivered++
		}
	}
	st.EstimatedCost = CostPerLead.Mul(decimal.NewFromInt(int64(delivered)))
	if delivered > 0 {
		st.ROIPercent = st.Revenue.Div(st.EstimatedCost).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}
	return st, nil
}

// best returns the key with the highest count; ties go to the smaller key.
func best(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	top := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[top] {
			top = k
		}
	}
	return top
}
