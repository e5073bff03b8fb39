package messages

import (
	"fmt"
	"math"
	"strings"

	"reactivation/internal/domain"
)

// triggerUplift is the expected conversion uplift range, in percent, of
// each trigger.
var triggerUplift = map[domain.Trigger][2]int{
	domain.TriggerScarcity:       {15, 25},
	domain.TriggerSocialProof:    {20, 30},
	domain.TriggerAnchoring:      {18, 28},
	domain.TriggerExclusiveBonus: {25, 35},
	domain.TriggerLossAversion:   {20, 30},
	domain.TriggerReciprocity:    {15, 25},
}

// stageTriggers is the default mix for each stage of the sequence.
var stageTriggers = map[domain.Stage][]domain.Trigger{
	domain.StageOpening:       {domain.TriggerSocialProof, domain.TriggerAnchoring, domain.TriggerExclusiveBonus},
	domain.StageReinforcement: {domain.TriggerScarcity, domain.TriggerSocialProof, domain.TriggerLossAversion},
	domain.StageUrgency:       {domain.TriggerScarcity, domain.TriggerLossAversion, domain.TriggerAnchoring},
}

// planMonthly is the list price of the plans the anchoring texts compare
// against.
var planMonthly = []struct {
	fragment string
	price    int
}{
	{"clube", 179},
	{"passaporte", 189},
	{"prata", 149},
	{"bronze", 119},
}

const (
	defaultMonthly = 149
	annualOffer    = 119
	assessment     = 150
	recentExitDays = 15
)

// MonthlyPrice returns the list price of plan, or the mid-range price when
// the plan is unknown.
func MonthlyPrice(plan string) int {
	p := domain.Fold(plan)
	if p == "" {
		return defaultMonthly
	}
	for _, pm := range planMonthly {
		if strings.Contains(p, pm.fragment) {
			return pm.price
		}
	}
	return defaultMonthly
}

// Estimate averages the uplift midpoints of ts. Unknown triggers count as
// zero.
func Estimate(ts []domain.Trigger) domain.Effectiveness {
	if len(ts) == 0 {
		return domain.Effectiveness{Level: "medium"}
	}
	sum := 0.0
	for _, t := range ts {
		r := triggerUplift[t]
		sum += float64(r[0]+r[1]) / 2
	}
	mean := sum / float64(len(ts))
	level := "medium"
	switch {
	case mean > 25:
		level = "very_high"
	case mean > 20:
		level = "high"
	}
	return domain.Effectiveness{UpliftPercent: int(math.Round(mean)), Triggers: len(ts), Level: level}
}

// ProfileTriggers picks the trigger mix for a member. Financial exits lean
// on price, premium plans on exclusivity and fresh exits on urgency. An
// unknown exit date never counts as fresh.
func ProfileTriggers(c domain.CustomerRecord, daysInactive int) domain.TriggerProfile {
	var p domain.TriggerProfile
	plan := domain.Fold(c.Plan)
	switch {
	case domain.NormalizeChurnReason(c.ChurnReason) == domain.ReasonFinancial:
		p.Triggers = []domain.Trigger{domain.TriggerAnchoring, domain.TriggerLossAversion, domain.TriggerSocialProof}
		p.Rationale = "financial exit: lean on savings"
	case strings.Contains(plan, "clube") || strings.Contains(plan, "passaporte"):
		p.Triggers = []domain.Trigger{domain.TriggerExclusiveBonus, domain.TriggerReciprocity, domain.TriggerScarcity}
		p.Rationale = "former premium plan: lean on exclusivity"
	case daysInactive >= 0 && daysInactive <= recentExitDays:
		p.Triggers = []domain.Trigger{domain.TriggerScarcity, domain.TriggerSocialProof, domain.TriggerExclusiveBonus}
		p.Rationale = "recent exit: maximum urgency"
	default:
		p.Triggers = []domain.Trigger{domain.TriggerSocialProof, domain.TriggerAnchoring, domain.TriggerScarcity}
		p.Rationale = "standard profile: balanced approach"
	}
	p.Expected = Estimate(p.Triggers)
	return p
}

// StageTriggers returns the triggers a stage text uses for seq: the stage
// default narrowed to the member's profile. A sequence without a profile,
// or whose profile shares nothing with the stage, gets the full default.
func StageTriggers(seq domain.FollowupSequence, stage domain.Stage) []domain.Trigger {
	base := stageTriggers[stage]
	if len(seq.Triggers) == 0 {
		return base
	}
	var out []domain.Trigger
	for _, t := range base {
		for _, p := range seq.Triggers {
			if t == p {
				out = append(out, t)
				break
			}
		}
	}
	if len(out) == 0 {
		return base
	}
	return out
}

// triggerBlock renders one trigger paragraph.
func (c *Composer) triggerBlock(t domain.Trigger, plan string) string {
	monthly := MonthlyPrice(plan)
	savings := monthly*12 - annualOffer
	switch t {
	case domain.TriggerScarcity:
		return fmt.Sprintf("⚠️ ATENÇÃO: Só %d vagas disponíveis!\n   Oferta acaba em %dh", c.rng.Between(3, 8), c.rng.Between(12, 36))
	case domain.TriggerSocialProof:
		return fmt.Sprintf("✅ %d ex-alunos já garantiram a vaga esta semana!\n   Não fique de fora", c.rng.Between(5, 20))
	case domain.TriggerAnchoring:
		return fmt.Sprintf("💰 PLANO ANUAL R$ %d\n   (De R$ %d/mês = R$ %d/ano)\n   ECONOMIA: R$ %d", annualOffer, monthly, monthly*12, savings)
	case domain.TriggerExclusiveBonus:
		return fmt.Sprintf("🎁 BÔNUS ESPECIAL:\n   + 2 meses grátis (R$ %d de economia)\n   + Avaliação física grátis (R$ %d)", monthly*2, assessment)
	case domain.TriggerLossAversion:
		return fmt.Sprintf("⚠️ IMPORTANTE:\n   Amanhã volta ao preço normal (R$ %d/mês)\n   Você vai PERDER R$ %d de economia!", monthly, savings)
	case domain.TriggerReciprocity:
		return "💙 Falei com o gerente e consegui esta condição EXCLUSIVA pra você...\n   Ninguém mais tem acesso a este preço!"
	default:
		return ""
	}
}
