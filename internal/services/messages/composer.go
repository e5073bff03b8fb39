// Package messages renders the outbound WhatsApp texts.
package messages

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"reactivation/internal/domain"
	"reactivation/internal/random"
)

// Composer rotates template variants per phone so a member approached twice
// does not get the same text. Safe for concurrent use.
type Composer struct {
	rng *random.Source

	mu       sync.Mutex
	rotation map[string]int
}

func New(rng *random.Source) *Composer {
	return &Composer{rng: rng, rotation: map[string]int{}}
}

// Compose renders the opening message for a template key. Unknown keys fall
// back to the generic return texts.
func (c *Composer) Compose(sc domain.ScoredCustomer, template string, offer domain.Offer) string {
	variants, ok := templates[template]
	if !ok {
		variants = templates[domain.TemplateGenericReturn]
	}
	text := variants[c.next(sc.Customer.Phone, len(variants))]
	return c.fill(text, sc.Customer, offer)
}

// StageMessage renders the follow-up text for a later stage: the stage
// opener, one paragraph per stage trigger and the call to action.
func (c *Composer) StageMessage(seq domain.FollowupSequence, stage domain.Stage) string {
	text, ok := stageTexts[stage]
	if !ok {
		return ""
	}
	name := domain.CustomerRecord{Name: seq.Name}.FirstName()
	parts := []string{fmt.Sprintf(text.opener, name)}
	for _, t := range StageTriggers(seq, stage) {
		if block := c.triggerBlock(t, seq.Plan); block != "" {
			parts = append(parts, block)
		}
	}
	parts = append(parts, text.cta)
	return strings.Join(parts, "\n\n")
}

// ProfileTriggers picks the trigger mix stored on a new sequence.
func (c *Composer) ProfileTriggers(cust domain.CustomerRecord, daysInactive int) domain.TriggerProfile {
	return ProfileTriggers(cust, daysInactive)
}

// StageTriggers reports the triggers StageMessage uses.
func (c *Composer) StageTriggers(seq domain.FollowupSequence, stage domain.Stage) []domain.Trigger {
	if _, ok := stageTexts[stage]; !ok {
		return nil
	}
	return StageTriggers(seq, stage)
}

func (c *Composer) next(phone string, n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.rotation[phone] % n
	c.rotation[phone]++
	return i
}

func (c *Composer) fill(text string, cust domain.CustomerRecord, offer domain.Offer) string {
	plan := cust.Plan
	if plan == "" {
		plan = "nosso plano"
	}
	motive := "ajuste na rotina"
	if strings.TrimSpace(cust.ChurnReason) != "" {
		motive = domain.NormalizeChurnReason(cust.ChurnReason).Describe()
	}
	offerName := offer.Name
	if offerName == "" {
		offerName = "condição especial de retorno"
	}
	r := strings.NewReplacer(
		"{nome}", cust.FirstName(),
		"{plano}", plan,
		"{tempo}", Tenure(cust),
		"{motivo}", motive,
		"{vagas}", strconv.Itoa(c.rng.Between(3, 8)),
		"{oferta}", offerName,
	)
	return strings.TrimSpace(r.Replace(text))
}

// Tenure describes how long the member stayed, in the register the
// templates use.
func Tenure(c domain.CustomerRecord) string {
	end := c.EndDate
	if end.IsZero() {
		end = c.LastActivity
	}
	if c.StartDate.IsZero() || end.IsZero() || end.Before(c.StartDate) {
		return "o tempo que você treinou"
	}
	months := (end.Year()-c.StartDate.Year())*12 + int(end.Month()) - int(c.StartDate.Month())
	if end.Day() < c.StartDate.Day() {
		months--
	}
	switch {
	case months >= 24:
		return fmt.Sprintf("%d anos", months/12)
	case months >= 12:
		return "1 ano"
	case months >= 2:
		return fmt.Sprintf("%d meses", months)
	default:
		return "esse tempo"
	}
}
