package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExperimentStatus string

const (
	ExperimentActive    ExperimentStatus = "ACTIVE"
	ExperimentFinalized ExperimentStatus = "FINALIZED"
)

type Variant struct {
	ID          string          `json:"id"`
	Index       int             `json:"index"`
	Name        string          `json:"name"`
	Template    string          `json:"template"`
	Offer       string          `json:"offer"`
	Sends       int             `json:"sends"`
	Conversions int             `json:"conversions"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ConversionRate is conversions/sends, zero when nothing was sent.
func (v Variant) ConversionRate() float64 {
	if v.Sends == 0 {
		return 0
	}
	return float64(v.Conversions) / float64(v.Sends)
}

type Experiment struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	StartsAt    time.Time        `json:"startsAt"`
	EndsAt      time.Time        `json:"endsAt"`
	Status      ExperimentStatus `json:"status"`
	Variants    []Variant        `json:"variants"`
	// Weights has one entry per variant; empty means uniform.
	Weights     []float64 `json:"weights,omitempty"`
	WinnerID    string    `json:"winnerId,omitempty"`
	FinalizedAt time.Time `json:"finalizedAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (e Experiment) Finalized() bool { return e.Status == ExperimentFinalized }

// Variant looks a variant up by id.
func (e Experiment) Variant(id string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// PickWinner returns the index of the variant with the strictly greatest
// conversion rate. Ties keep the earlier-declared variant. It returns -1 for
// an empty slice.
func PickWinner(variants []Variant) int {
	best := -1
	bestRate := 0.0
	for i, v := range variants {
		rate := v.ConversionRate()
		if best == -1 || rate > bestRate {
			best, bestRate = i, rate
		}
	}
	return best
}
