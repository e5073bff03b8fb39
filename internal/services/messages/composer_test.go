package messages

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reactivation/internal/domain"
	"reactivation/internal/random"
)

func customer() domain.ScoredCustomer {
	return domain.ScoredCustomer{Customer: domain.CustomerRecord{
		Name:        "Maria Clara",
		Phone:       "66999991111",
		Plan:        "Prata",
		StartDate:   time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ChurnReason: "Financeiro",
	}}
}

func TestComposeFillsPlaceholders(t *testing.T) {
	c := New(random.New(1))
	msg := c.Compose(customer(), domain.TemplateUrgentFinancial, domain.Offer{Name: "Plano Anual"})
	assert.Contains(t, msg, "Maria!")
	assert.Contains(t, msg, "Prata")
	assert.Contains(t, msg, "2 anos")
	assert.NotContains(t, msg, "{")

	second := c.Compose(customer(), domain.TemplateUrgentFinancial, domain.Offer{})
	assert.Contains(t, second, "ajuste no orçamento")
	assert.NotEqual(t, msg, second)
}

func TestComposeIsReproducibleWithSeed(t *testing.T) {
	a := New(random.New(99)).Compose(customer(), domain.TemplateUrgentFinancial, domain.Offer{})
	b := New(random.New(99)).Compose(customer(), domain.TemplateUrgentFinancial, domain.Offer{})
	assert.Equal(t, a, b)
}

func TestUnknownTemplateFallsBack(t *testing.T) {
	msg := New(random.New(1)).Compose(customer(), "missing", domain.Offer{Name: "Avaliação Grátis"})
	assert.Contains(t, msg, "Avaliação Grátis")
}

func TestStageMessages(t *testing.T) {
	c := New(random.New(3))
	seq := domain.FollowupSequence{Name: "João Pedro"}

	reinforcement := c.StageMessage(seq, domain.StageReinforcement)
	assert.Contains(t, reinforcement, "João, tudo bem?")
	assert.Contains(t, reinforcement, "vagas disponíveis")
	assert.Contains(t, reinforcement, "ex-alunos já garantiram")
	assert.Contains(t, reinforcement, "Você vai PERDER R$ 1669")
	assert.True(t, strings.HasSuffix(reinforcement, "Só dizer: QUERO!"))

	urgency := c.StageMessage(seq, domain.StageUrgency)
	assert.Contains(t, urgency, "ÚLTIMA CHANCE")
	assert.Contains(t, urgency, "(De R$ 149/mês = R$ 1788/ano)")

	assert.Empty(t, c.StageMessage(seq, domain.StageDone))
	assert.Nil(t, c.StageTriggers(seq, domain.StageDone))
}

func TestStageMessageFollowsProfile(t *testing.T) {
	c := New(random.New(3))
	seq := domain.FollowupSequence{
		Name:     "Ana",
		Plan:     "Clube Full",
		Triggers: []domain.Trigger{domain.TriggerExclusiveBonus, domain.TriggerReciprocity, domain.TriggerScarcity},
	}
	assert.Equal(t, []domain.Trigger{domain.TriggerScarcity}, c.StageTriggers(seq, domain.StageReinforcement))

	msg := c.StageMessage(seq, domain.StageReinforcement)
	assert.Contains(t, msg, "vagas disponíveis")
	assert.NotContains(t, msg, "ex-alunos")
	assert.NotContains(t, msg, "PERDER")
}

func TestProfileTriggers(t *testing.T) {
	cases := []struct {
		name      string
		customer  domain.CustomerRecord
		days      int
		want      []domain.Trigger
		rationale string
	}{
		{
			name:      "financial exit",
			customer:  domain.CustomerRecord{Plan: "Clube Full", ChurnReason: "ficou caro"},
			days:      5,
			want:      []domain.Trigger{domain.TriggerAnchoring, domain.TriggerLossAversion, domain.TriggerSocialProof},
			rationale: "financial exit: lean on savings",
		},
		{
			name:     "premium plan",
			customer: domain.CustomerRecord{Plan: "Passaporte", ChurnReason: "falta de tempo"},
			days:     5,
			want:     []domain.Trigger{domain.TriggerExclusiveBonus, domain.TriggerReciprocity, domain.TriggerScarcity},
		},
		{
			name:     "recent exit",
			customer: domain.CustomerRecord{Plan: "Bronze"},
			days:     15,
			want:     []domain.Trigger{domain.TriggerScarcity, domain.TriggerSocialProof, domain.TriggerExclusiveBonus},
		},
		{
			name:     "unknown exit date is not recent",
			customer: domain.CustomerRecord{Plan: "Bronze"},
			days:     -1,
			want:     []domain.Trigger{domain.TriggerSocialProof, domain.TriggerAnchoring, domain.TriggerScarcity},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ProfileTriggers(tc.customer, tc.days)
			assert.Equal(t, tc.want, p.Triggers)
			assert.Equal(t, 3, p.Expected.Triggers)
			if tc.rationale != "" {
				assert.Equal(t, tc.rationale, p.Rationale)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	e := Estimate([]domain.Trigger{domain.TriggerSocialProof, domain.TriggerAnchoring, domain.TriggerExclusiveBonus})
	assert.Equal(t, domain.Effectiveness{UpliftPercent: 26, Triggers: 3, Level: "very_high"}, e)

	e = Estimate([]domain.Trigger{domain.TriggerScarcity, domain.TriggerReciprocity})
	assert.Equal(t, domain.Effectiveness{UpliftPercent: 20, Triggers: 2, Level: "medium"}, e)

	assert.Equal(t, "medium", Estimate(nil).Level)
}

func TestMonthlyPrice(t *testing.T) {
	assert.Equal(t, 179, MonthlyPrice("CLUBE+FULL"))
	assert.Equal(t, 189, MonthlyPrice("Passaporte"))
	assert.Equal(t, 119, MonthlyPrice("bronze"))
	assert.Equal(t, 149, MonthlyPrice(""))
	assert.Equal(t, 149, MonthlyPrice("Mensal"))
}

func TestTenure(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 ano", Tenure(domain.CustomerRecord{StartDate: start, EndDate: start.AddDate(1, 3, 0)}))
	assert.Equal(t, "4 meses", Tenure(domain.CustomerRecord{StartDate: start, EndDate: start.AddDate(0, 4, 0)}))
	assert.Equal(t, "esse tempo", Tenure(domain.CustomerRecord{StartDate: start, EndDate: start.AddDate(0, 0, 20)}))
	assert.Equal(t, "o tempo que você treinou", Tenure(domain.CustomerRecord{}))
}
