// Package offers picks the return offer attached to each outreach.
package offers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

// AnnualPrice is the yearly plan every retention offer converges on.
var AnnualPrice = decimal.NewFromInt(119)

// Offer kinds.
const (
	KindAnnualFinancial = "PLANO_ANUAL_FINANCEIRO"
	KindVIPReturn       = "RETORNO_VIP"
	KindDiscount        = "DESCONTO"
	KindGift            = "BRINDE"
	KindCombo           = "COMBO"
	KindTrial           = "TESTE"
)

// Keys of offers produced by the generator rules.
const (
	KeyFinancialAnnual = "financial_annual_119"
	KeyEnrollment20    = "enrollment_discount_20"
	KeyBringAFriend    = "bring_a_friend"
	KeyReturnCombo     = "return_combo"
)

var planPrices = map[string]int64{
	"clube+full": 179,
	"passaporte": 189,
	"prata":      149,
	"bronze":     119,
}

const defaultPlanPrice = 149

type planOffer struct {
	key      string
	name     string
	original int64
	benefits []string
}

// Premium plans keep their perceived value with a dedicated offer.
var planOffers = map[string]planOffer{
	"clube+full": {"vip_clube_full", "Retorno VIP Anual", 179, []string{"Acesso ilimitado", "Todas as aulas", "2 meses extras grátis"}},
	"passaporte": {"vip_passaporte", "Passaporte Anual Premium", 189, []string{"Acesso total", "Sem fidelidade"}},
	"prata":      {"vip_prata", "Upgrade Anual Prata", 149, []string{"Mesmos benefícios do Prata", "R$ 119/ano"}},
}

// Generator is stateless and safe for concurrent use.
type Generator struct {
	catalog map[string]domain.Offer
}

func New() *Generator {
	g := &Generator{catalog: map[string]domain.Offer{}}
	for _, o := range []domain.Offer{
		{
			Key: KeyEnrollment20, Name: "Desconto Matrícula 20%", Kind: KindDiscount,
			Description:   "Desconto de 20% na matrícula",
			OriginalPrice: decimal.NewFromInt(100), OfferPrice: decimal.NewFromInt(80),
			Urgency: "48 horas",
		},
		{
			Key: domain.OfferFreeAssessment, Name: "Avaliação Física Grátis", Kind: KindGift,
			Description:   "Primeira avaliação física completamente grátis",
			OriginalPrice: decimal.NewFromInt(150), OfferPrice: decimal.Zero,
			Urgency: "7 dias",
		},
		{
			Key: KeyBringAFriend, Name: "Traga um Amigo Grátis", Kind: KindCombo,
			Description:   "Amigo treina grátis por 1 mês ao contratar o plano anual",
			OriginalPrice: AnnualPrice, OfferPrice: AnnualPrice,
			Urgency: "10 dias",
		},
		{
			Key: KeyReturnCombo, Name: "Combo Retorno Total", Kind: KindCombo,
			Description:   "Matrícula + avaliação física + 1ª semana",
			OriginalPrice: decimal.NewFromInt(350), OfferPrice: decimal.NewFromInt(100),
			Urgency: "15 dias",
		},
		{
			Key: domain.OfferAnnualDiscount, Name: "Plano Anual R$ 119", Kind: KindAnnualFinancial,
			Description:   "Plano anual R$ 119, menos de R$ 10/mês",
			OriginalPrice: decimal.NewFromInt(defaultPlanPrice * 12), OfferPrice: AnnualPrice,
			Urgency: "48 horas",
		},
		{
			Key: domain.OfferAnnualPlan119, Name: "Plano Anual R$ 119", Kind: KindVIPReturn,
			Description:   "Um ano inteiro de acesso por R$ 119",
			OriginalPrice: decimal.NewFromInt(defaultPlanPrice * 12), OfferPrice: AnnualPrice,
			Urgency: "72h",
		},
		{
			Key: domain.OfferFreeFirstWeek, Name: "Primeira Semana Grátis", Kind: KindTrial,
			Description:   "Horários flexíveis e a primeira semana sem custo",
			OriginalPrice: decimal.Zero, OfferPrice: decimal.Zero,
			Urgency: "72h",
		},
	} {
		g.catalog[o.Key] = o
	}
	return g
}

// ByKey returns a catalog offer. Experiment variants name offers by key.
func (g *Generator) ByKey(key string) (domain.Offer, bool) {
	o, ok := g.catalog[key]
	return o, ok
}

// OfferFor applies the rules in order: financial exit, premium plan, then
// days inactive.
func (g *Generator) OfferFor(sc domain.ScoredCustomer) domain.Offer {
	plan := planKey(sc.Customer.Plan)
	if sc.Score.Reason == domain.ReasonFinancial {
		return financialOffer(plan)
	}
	if po, ok := planOffers[plan]; ok {
		original := decimal.NewFromInt(po.original)
		return domain.Offer{
			Key:           po.key,
			Name:          po.name,
			Kind:          KindVIPReturn,
			Description:   fmt.Sprintf("De R$ %s/mês para R$ %s/ano", original, AnnualPrice),
			OriginalPrice: original,
			OfferPrice:    AnnualPrice,
			Urgency:       "72h",
			Benefits:      po.benefits,
		}
	}
	days := sc.Score.DaysInactive
	switch {
	case days >= 0 && days <= 15:
		return g.catalog[KeyEnrollment20]
	case days >= 0 && days <= 45:
		return g.catalog[domain.OfferFreeAssessment]
	case days >= 0 && days <= 60:
		return g.catalog[KeyBringAFriend]
	default:
		return g.catalog[KeyReturnCombo]
	}
}

func financialOffer(plan string) domain.Offer {
	monthly := decimal.NewFromInt(PlanPrice(plan))
	savings := monthly.Mul(decimal.NewFromInt(12)).Sub(AnnualPrice)
	return domain.Offer{
		Key:           KeyFinancialAnnual,
		Name:          "OFERTA ESPECIAL - Plano Anual R$ 119",
		Kind:          KindAnnualFinancial,
		Description:   fmt.Sprintf("De R$ %s/mês para R$ %s/ano inteiro", monthly, AnnualPrice),
		OriginalPrice: monthly,
		OfferPrice:    AnnualPrice,
		Urgency:       "48 horas",
		Benefits: []string{
			"Apenas R$ 9,92 por mês",
			fmt.Sprintf("Economia de R$ %s no ano", savings.StringFixed(0)),
			"Acesso ilimitado todos os dias",
			"Todas as aulas inclusas",
		},
	}
}

// PlanPrice is the monthly price of a plan, with a default for unknown ones.
func PlanPrice(plan string) int64 {
	if p, ok := planPrices[planKey(plan)]; ok {
		return p
	}
	return defaultPlanPrice
}

func planKey(plan string) string {
	return strings.ReplaceAll(domain.Fold(plan), " ", "")
}
