package domain

import "strings"

// ChurnReason is the closed set free-text exit reasons are normalized into.
type ChurnReason string

const (
	ReasonFinancial      ChurnReason = "FINANCIAL"
	ReasonTimeConstraint ChurnReason = "TIME_CONSTRAINT"
	ReasonHealth         ChurnReason = "HEALTH"
	ReasonGoalReached    ChurnReason = "GOAL_REACHED"
	ReasonDissatisfied   ChurnReason = "DISSATISFIED"
	ReasonCompetitor     ChurnReason = "COMPETITOR"
	ReasonRelocation     ChurnReason = "RELOCATION"
	ReasonUnknown        ChurnReason = "UNKNOWN"
)

// Rules are checked in order; the first matching fragment wins.
var reasonRules = []struct {
	reason    ChurnReason
	fragments []string
}{
	{ReasonFinancial, []string{"financeiro", "dinheiro", "caro"}},
	{ReasonTimeConstraint, []string{"tempo", "horario"}},
	{ReasonHealth, []string{"saude", "lesao"}},
	{ReasonGoalReached, []string{"objetivo", "meta"}},
	{ReasonDissatisfied, []string{"insatisf", "qualidade"}},
	{ReasonCompetitor, []string{"outra", "concorr"}},
	{ReasonRelocation, []string{"mudanca", "viagem"}},
}

// NormalizeChurnReason maps a free-text exit reason to the closed set.
func NormalizeChurnReason(raw string) ChurnReason {
	text := Fold(raw)
	if text == "" {
		return ReasonUnknown
	}
	for _, rule := range reasonRules {
		for _, f := range rule.fragments {
			if strings.Contains(text, f) {
				return rule.reason
			}
		}
	}
	return ReasonUnknown
}

// Describe renders the reason the way messages refer to it.
func (r ChurnReason) Describe() string {
	switch r {
	case ReasonFinancial:
		return "ajuste no orçamento"
	case ReasonTimeConstraint:
		return "falta de tempo"
	case ReasonHealth:
		return "questão de saúde"
	case ReasonRelocation:
		return "mudança de cidade"
	default:
		return "motivo pessoal"
	}
}
