package experiments

import (
	"fmt"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

type VariantReport struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Sends          int             `json:"sends"`
	Conversions    int             `json:"conversions"`
	RatePercent    float64         `json:"ratePercent"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePerSend decimal.Decimal `json:"revenuePerSend"`
	Winner         bool            `json:"winner"`
}

type Report struct {
	ExperimentID     string                  `json:"experimentId"`
	Name             string                  `json:"name"`
	Period           string                  `json:"period"`
	Status           domain.ExperimentStatus `json:"status"`
	TotalSends       int                     `json:"totalSends"`
	TotalConversions int                     `json:"totalConversions"`
	RatePercent      float64                 `json:"ratePercent"`
	TotalRevenue     decimal.Decimal         `json:"totalRevenue"`
	Variants         []VariantReport         `json:"variants"`
	Recommendation   string                  `json:"recommendation"`
}

func BuildReport(exp domain.Experiment) Report {
	r := Report{
		ExperimentID: exp.ID,
		Name:         exp.Name,
		Period:       exp.StartsAt.Format("2006-01-02") + " - " + exp.EndsAt.Format("2006-01-02"),
		Status:       exp.Status,
		TotalRevenue: decimal.Zero,
	}
	for _, v := range exp.Variants {
		r.TotalSends += v.Sends
		r.TotalConversions += v.Conversions
		r.TotalRevenue = r.TotalRevenue.Add(v.Revenue)
		perSend := decimal.Zero
		if v.Sends > 0 {
			perSend = v.Revenue.Div(decimal.NewFromInt(int64(v.Sends))).Round(2)
		}
		r.Variants = append(r.Variants, VariantReport{
			ID:             v.ID,
			Name:           v.Name,
			Sends:          v.Sends,
			Conversions:    v.Conversions,
			RatePercent:    v.ConversionRate() * 100,
			Revenue:        v.Revenue,
			RevenuePerSend: perSend,
			Winner:         v.ID == exp.WinnerID,
		})
	}
	if r.TotalSends > 0 {
		r.RatePercent = float64(r.TotalConversions) / float64(r.TotalSends) * 100
	}
	r.Recommendation = recommendation(exp)
	return r
}

// recommendation compares the winner with the best of the remaining
// variants, in percentage points.
func recommendation(exp domain.Experiment) string {
	winner, ok := exp.Variant(exp.WinnerID)
	if !ok {
		return "Teste ainda em andamento. Aguardar mais dados."
	}
	runnerUp := -1.0
	for _, v := range exp.Variants {
		if v.ID != winner.ID && v.ConversionRate() > runnerUp {
			runnerUp = v.ConversionRate()
		}
	}
	if runnerUp < 0 {
		runnerUp = 0
	}
	diff := (winner.ConversionRate() - runnerUp) * 100
	switch {
	case diff > 10:
		return fmt.Sprintf("IMPLEMENTAR %s IMEDIATAMENTE. Diferença significativa de %.1f%% na conversão.", winner.Name, diff)
	case diff > 5:
		return fmt.Sprintf("Usar %s preferencialmente. Melhoria moderada de %.1f%%.", winner.Name, diff)
	default:
		return fmt.Sprintf("Resultados similares. Continuar testando ou usar %s, ligeiramente melhor.", winner.Name)
	}
}
