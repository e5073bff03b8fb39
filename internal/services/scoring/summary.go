package scoring

import "reactivation/internal/domain"

// TopCount is how many members the summary lists by name.
const TopCount = 10

type Summary struct {
	Total        int                     `json:"total"`
	Distribution map[domain.Tier]int     `json:"distribution"`
	MeanScore    int                     `json:"meanScore"`
	Top          []domain.ScoredCustomer `json:"top"`
}

// Summarize expects scored to be sorted, as ScoreAll returns it.
func Summarize(scored []domain.ScoredCustomer) Summary {
	s := Summary{
		Total:        len(scored),
		Distribution: Distribution(scored),
		MeanScore:    MeanScore(scored),
	}
	n := min(TopCount, len(scored))
	s.Top = append([]domain.ScoredCustomer(nil), scored[:n]...)
	return s
}

// Distribution counts members per tier, listing every tier.
func Distribution(scored []domain.ScoredCustomer) map[domain.Tier]int {
	dist := make(map[domain.Tier]int, len(domain.Tiers))
	for _, t := range domain.Tiers {
		dist[t] = 0
	}
	for _, sc := range scored {
		dist[sc.Score.Tier]++
	}
	return dist
}

// MeanScore is the rounded mean total, zero for an empty slice.
func MeanScore(scored []domain.ScoredCustomer) int {
	if len(scored) == 0 {
		return 0
	}
	sum := 0
	for _, sc := range scored {
		sum += sc.Score.Total
	}
	return (sum + len(scored)/2) / len(scored)
}
