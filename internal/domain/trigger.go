package domain

import (
	"strings"
	"time"
)

// Trigger is a persuasion device a follow-up text leans on.
type Trigger string

const (
	TriggerScarcity       Trigger = "SCARCITY"
	TriggerSocialProof    Trigger = "SOCIAL_PROOF"
	TriggerAnchoring      Trigger = "ANCHORING"
	TriggerExclusiveBonus Trigger = "EXCLUSIVE_BONUS"
	TriggerLossAversion   Trigger = "LOSS_AVERSION"
	TriggerReciprocity    Trigger = "RECIPROCITY"
)

// JoinTriggers flattens a trigger list for a text column.
func JoinTriggers(ts []Trigger) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// SplitTriggers is the inverse of JoinTriggers. Blank input yields nil.
func SplitTriggers(s string) []Trigger {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]Trigger, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, Trigger(p))
		}
	}
	return out
}

// Effectiveness is the expected conversion uplift of a trigger mix.
type Effectiveness struct {
	UpliftPercent int    `json:"upliftPercent"`
	Triggers      int    `json:"triggers"`
	Level         string `json:"level"`
}

// TriggerProfile is the trigger mix picked for one member.
type TriggerProfile struct {
	Triggers  []Trigger     `json:"triggers"`
	Rationale string        `json:"rationale"`
	Expected  Effectiveness `json:"expected"`
}

type StagePreview struct {
	Stage    Stage         `json:"stage"`
	SendAt   time.Time     `json:"sendAt"`
	Text     string        `json:"text"`
	Triggers []Trigger     `json:"triggers,omitempty"`
	Expected Effectiveness `json:"expected"`
}

// SequencePreview is the full multi-day text a batch item would receive.
type SequencePreview struct {
	Phone   string         `json:"phone"`
	Name    string         `json:"name"`
	Profile TriggerProfile `json:"profile"`
	Stages  []StagePreview `json:"stages"`
}
