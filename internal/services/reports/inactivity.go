package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"reactivation/internal/domain"
)

type Segment string

const (
	SegmentUltraRecent Segment = "ULTRA_RECENT"
	SegmentVeryRecent  Segment = "VERY_RECENT"
	SegmentRecent      Segment = "RECENT"
	SegmentModerate    Segment = "MODERATE"
	SegmentMedium      Segment = "MEDIUM"
	SegmentOld         Segment = "OLD"
	SegmentVeryOld     Segment = "VERY_OLD"
)

// segments are checked in order; the last one is open-ended.
var segments = []struct {
	name    Segment
	minDays int
	maxDays int
	weight  int
	urgency string
}{
	{SegmentUltraRecent, 0, 7, 10, "HIGHEST"},
	{SegmentVeryRecent, 8, 15, 9, "VERY_HIGH"},
	{SegmentRecent, 16, 30, 8, "HIGH"},
	{SegmentModerate, 31, 45, 6, "MEDIUM"},
	{SegmentMedium, 46, 60, 4, "MEDIUM_LOW"},
	{SegmentOld, 61, 90, 2, "LOW"},
	{SegmentVeryOld, 91, 0, 1, "VERY_LOW"},
}

const (
	highPriorityDays = 30
	topPriorities    = 20
)

// ClassifySegment places a non-negative inactivity span in its segment.
func ClassifySegment(days int) Segment {
	for _, sg := range segments[:len(segments)-1] {
		if days <= sg.maxDays {
			return sg.name
		}
	}
	return SegmentVeryOld
}

type InactiveMember struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Plan         string  `json:"plan"`
	ChurnReason  string  `json:"churnReason"`
	ExitDate     string  `json:"exitDate"`
	DaysInactive int     `json:"daysInactive"`
	Segment      Segment `json:"segment"`
}

type SegmentGroup struct {
	Segment Segment          `json:"segment"`
	MinDays int              `json:"minDays"`
	MaxDays int              `json:"maxDays,omitempty"`
	Weight  int              `json:"weight"`
	Urgency string           `json:"urgency"`
	Count   int              `json:"count"`
	Members []InactiveMember `json:"members"`
}

// Recommendation is the suggested campaign posture for a report.
type Recommendation struct {
	Kind          string `json:"kind"`
	Action        string `json:"action"`
	Message       string `json:"message"`
	ActWithinDays int    `json:"actWithinDays"`
	TargetPercent int    `json:"targetPercent,omitempty"`
}

type InactivityStats struct {
	Total               int            `json:"total"`
	MeanDays            int            `json:"meanDays"`
	MedianDays          int            `json:"medianDays"`
	ByUrgency           map[string]int `json:"byUrgency"`
	HighPriority        int            `json:"highPriority"`
	HighPriorityPercent float64        `json:"highPriorityPercent"`
	Recommendation      Recommendation `json:"recommendation"`
}

type InactivityReport struct {
	AsOf          time.Time        `json:"asOf"`
	Total         int              `json:"total"`
	Undated       int              `json:"undated"`
	Segments      []SegmentGroup   `json:"segments"`
	Stats         InactivityStats  `json:"stats"`
	TopPriorities []InactiveMember `json:"topPriorities"`
}

// Inactivity segments the lapsed population by days since exit. Members
// with no usable exit date are counted as undated and left out.
func (s *Service) Inactivity(ctx context.Context) (InactivityReport, error) {
	rows, err := s.population.FetchInactive(ctx)
	if err != nil {
		return InactivityReport{}, fmt.Errorf("fetch population: %w", err)
	}
	now := s.clock.Now()
	rep := InactivityReport{AsOf: now, Segments: make([]SegmentGroup, len(segments))}
	index := map[Segment]int{}
	for i, sg := range segments {
		rep.Segments[i] = SegmentGroup{
			Segment: sg.name,
			MinDays: sg.minDays,
			MaxDays: sg.maxDays,
			Weight:  sg.weight,
			Urgency: sg.urgency,
			Members: []InactiveMember{},
		}
		index[sg.name] = i
	}

	var members []InactiveMember
	for _, c := range rows {
		exit := c.ExitDate()
		days := domain.DaysBetween(exit, now)
		if days < 0 {
			rep.Undated++
			continue
		}
		members = append(members, InactiveMember{
			Name:         c.Name,
			Phone:        domain.NormalizePhone(c.Phone),
			Plan:         c.Plan,
			ChurnReason:  c.ChurnReason,
			ExitDate:     exit.Format("2006-01-02"),
			DaysInactive: days,
			Segment:      ClassifySegment(days),
		})
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].DaysInactive < members[j].DaysInactive })

	for _, m := range members {
		g := &rep.Segments[index[m.Segment]]
		g.Count++
		g.Members = append(g.Members, m)
		if m.DaysInactive <= highPriorityDays && len(rep.TopPriorities) < topPriorities {
			rep.TopPriorities = append(rep.TopPriorities, m)
		}
	}
	rep.Total = len(members)
	rep.Stats = inactivityStats(members, rep.Segments)
	return rep, nil
}

// InactivitySegment returns one segment of the current report.
func (s *Service) InactivitySegment(ctx context.Context, name string) (SegmentGroup, error) {
	want := Segment(strings.ToUpper(strings.TrimSpace(name)))
	known := false
	for _, sg := range segments {
		known = known || sg.name == want
	}
	if !known {
		return SegmentGroup{}, fmt.Errorf("%w: unknown segment %q", domain.ErrInvalidInput, name)
	}
	rep, err := s.Inactivity(ctx)
	if err != nil {
		return SegmentGroup{}, err
	}
	for _, g := range rep.Segments {
		if g.Segment == want {
			return g, nil
		}
	}
	return SegmentGroup{}, fmt.Errorf("segment %s: %w", want, domain.ErrNotFound)
}

// inactivityStats expects members sorted by DaysInactive.
func inactivityStats(members []InactiveMember, groups []SegmentGroup) InactivityStats {
	st := InactivityStats{Total: len(members), ByUrgency: map[string]int{}}
	for _, g := range groups {
		st.ByUrgency[g.Urgency] += g.Count
	}
	if st.Total == 0 {
		st.Recommendation = inactivityRecommendation(0, 0)
		return st
	}
	sum := 0
	for _, m := range members {
		sum += m.DaysInactive
		if m.DaysInactive <= highPriorityDays {
			st.HighPriority++
		}
	}
	st.MeanDays = int(math.Round(float64(sum) / float64(st.Total)))
	mid := st.Total / 2
	if st.Total%2 == 0 {
		st.MedianDays = int(math.Round(float64(members[mid-1].DaysInactive+members[mid].DaysInactive) / 2))
	} else {
		st.MedianDays = members[mid].DaysInactive
	}
	pct := float64(st.HighPriority) / float64(st.Total) * 100
	st.HighPriorityPercent = math.Round(pct*10) / 10
	st.Recommendation = inactivityRecommendation(st.HighPriority, pct)
	return st
}

func inactivityRecommendation(hot int, pct float64) Recommendation {
	switch {
	case pct > 30:
		return Recommendation{
			Kind:          "URGENT",
			Action:        "INTENSIVE_CAMPAIGN",
			Message:       fmt.Sprintf("%d members left recently (%.0f%%), act now for the best recovery", hot, pct),
			ActWithinDays: 1,
		}
	case pct > 15:
		return Recommendation{
			Kind:          "IMPORTANT",
			Action:        "REGULAR_CAMPAIGN",
			Message:       fmt.Sprintf("%d warm leads available, start a reactivation campaign within 3 days", hot),
			ActWithinDays: 3,
		}
	default:
		return Recommendation{
			Kind:          "ROUTINE",
			Action:        "STANDARD_CAMPAIGN",
			Message:       "stable base, keep the standard reactivation campaign",
			ActWithinDays: 7,
		}
	}
}
