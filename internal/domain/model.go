package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Core domain models shared by the services and the store adapters. Wire
// formats for the HTTP surface live next to the handlers.

// CustomerRecord is a lapsed member as read from the population source.
// Zero times and a zero Age mean the field was missing or unparsable.
type CustomerRecord struct {
	Name         string
	Phone        string
	Plan         string
	StartDate    time.Time
	EndDate      time.Time
	LastActivity time.Time
	ChurnReason  string
	Age          int
	BirthDate    time.Time
	Email        string
	Notes        string
}

// InactiveSince returns the reference date for recency: last activity when
// known, else the membership end date.
func (c CustomerRecord) InactiveSince() time.Time {
	if !c.LastActivity.IsZero() {
		return c.LastActivity
	}
	return c.EndDate
}

// ExitDate returns the membership end date, falling back to last activity.
func (c CustomerRecord) ExitDate() time.Time {
	if !c.EndDate.IsZero() {
		return c.EndDate
	}
	return c.LastActivity
}

// DaysBetween returns whole days from since to now, or -1 when since is
// unknown or in the future.
func DaysBetween(since, now time.Time) int {
	if since.IsZero() || since.After(now) {
		return -1
	}
	return int(now.Sub(since) / (24 * time.Hour))
}

// FirstName is used by the message templates.
func (c CustomerRecord) FirstName() string {
	for i, r := range c.Name {
		if r == ' ' {
			return c.Name[:i]
		}
	}
	if c.Name == "" {
		return "amigo(a)"
	}
	return c.Name
}

type Tier string

const (
	TierVeryHigh Tier = "VERY_HIGH"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
	TierLow      Tier = "LOW"
	TierVeryLow  Tier = "VERY_LOW"
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierVeryHigh, TierHigh, TierMedium, TierLow, TierVeryLow}

// TierFor buckets a 0..100 total.
func TierFor(total int) Tier {
	switch {
	case total >= 80:
		return TierVeryHigh
	case total >= 65:
		return TierHigh
	case total >= 50:
		return TierMedium
	case total >= 35:
		return TierLow
	default:
		return TierVeryLow
	}
}

// Template and offer keys recommended by the scoring engine.
const (
	TemplateUrgentFinancial = "urgent_financial"
	TemplateFlexibility     = "flexible_schedule"
	TemplateLoyaltyWinback  = "loyalty_winback"
	TemplateGenericReturn   = "generic_return"

	OfferAnnualDiscount = "annual_discount_20"
	OfferFreeFirstWeek  = "free_first_week"
	OfferAnnualPlan119  = "annual_plan_119"
	OfferFreeAssessment = "free_assessment"
)

type Timing string

const (
	TimingImmediate Timing = "IMMEDIATE"
	TimingNextDay   Timing = "NEXT_DAY"
	Timing24to48h   Timing = "24-48H"
	Timing72h       Timing = "72H"
)

type Recommendation struct {
	Template string `json:"template"`
	Offer    string `json:"offer"`
	Timing   Timing `json:"timing"`
	Reason   string `json:"reason"`
}

type SubScores struct {
	Recency     int `json:"recency"`
	PlanValue   int `json:"planValue"`
	Tenure      int `json:"tenure"`
	ChurnReason int `json:"churnReason"`
	AgeBand     int `json:"ageBand"`
}

type ScoreResult struct {
	SubScores      SubScores      `json:"subScores"`
	Total          int            `json:"total"`
	Tier           Tier           `json:"tier"`
	Recommendation Recommendation `json:"recommendation"`
	// DaysInactive is -1 when no reference date was available.
	DaysInactive int         `json:"daysInactive"`
	Reason       ChurnReason `json:"reason"`
}

type ScoredCustomer struct {
	Customer CustomerRecord `json:"customer"`
	Score    ScoreResult    `json:"score"`
}

type Outcome string

const (
	OutcomeSent       Outcome = "SENT"
	OutcomeFailed     Outcome = "FAILED"
	OutcomeReplied    Outcome = "REPLIED"
	OutcomeInterested Outcome = "INTERESTED"
	OutcomeOptedOut   Outcome = "OPTED_OUT"
	OutcomeConverted  Outcome = "CONVERTED"
)

// Delivered reports whether the record stands for a message that actually
// reached the transport. Only delivered approaches count towards cooldown.
func (o Outcome) Delivered() bool { return o != OutcomeFailed && o != "" }

// OutreachRecord is one append-only ledger entry. Only Outcome changes after
// creation.
type OutreachRecord struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	At        time.Time `json:"at"`
	Score     int       `json:"score"`
	Template  string    `json:"template"`
	Offer     string    `json:"offer"`
	Channel   string    `json:"channel"`
	Stage     Stage     `json:"stage"`
	VariantID string    `json:"variantId,omitempty"`
	BatchID   string    `json:"batchId,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Error     string    `json:"error,omitempty"`
}

type BlacklistEntry struct {
	Phone  string    `json:"phone"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

type Intent string

const (
	IntentInterested Intent = "INTERESTED"
	IntentOptOut     Intent = "OPT_OUT"
	IntentQuestion   Intent = "QUESTION"
	IntentNeutral    Intent = "NEUTRAL"
)

// Intents lists every intent in classification priority order.
var Intents = []Intent{IntentOptOut, IntentInterested, IntentQuestion, IntentNeutral}

// InboundReply is immutable once stored; Intent is computed at ingestion.
type InboundReply struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	At          time.Time `json:"at"`
	Intent      Intent    `json:"intent"`
}

type LeadStatus string

const (
	LeadPending   LeadStatus = "PENDING_FOLLOWUP"
	LeadContacted LeadStatus = "CONTACTED"
	LeadConverted LeadStatus = "CONVERTED"
)

// HotLead is a member who replied with interest and waits for a human.
type HotLead struct {
	Phone      string     `json:"phone"`
	Name       string     `json:"name"`
	FirstReply string     `json:"firstReply"`
	RepliedAt  time.Time  `json:"repliedAt"`
	Status     LeadStatus `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type Conversion struct {
	ID            string          `json:"id"`
	Phone         string          `json:"phone"`
	Name          string          `json:"name"`
	Plan          string          `json:"plan"`
	Value         decimal.Decimal `json:"value"`
	At            time.Time       `json:"at"`
	DaysToConvert int             `json:"daysToConvert"`
	Source        string          `json:"source"`
	Score         int             `json:"score"`
	Template      string          `json:"template,omitempty"`
	Offer         string          `json:"offer,omitempty"`
	VariantID     string          `json:"variantId,omitempty"`
}

type Offer struct {
	Key           string          `json:"key"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	OfferPrice    decimal.Decimal `json:"offerPrice"`
	Urgency       string          `json:"urgency"`
	Benefits      []string        `json:"benefits,omitempty"`
}
