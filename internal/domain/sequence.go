package domain

import "time"

// Stage is a follow-up sequence position. A sequence records the last stage
// that fired; DONE and CANCELLED are terminal.
type Stage string

const (
	StageOpening       Stage = "OPENING"
	StageReinforcement Stage = "REINFORCEMENT"
	StageUrgency       Stage = "URGENCY"
	StageDone          Stage = "DONE"
	StageCancelled     Stage = "CANCELLED"
)

func (s Stage) Terminal() bool { return s == StageDone || s == StageCancelled }

// Next returns the stage that follows s and whether one exists.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageOpening:
		return StageReinforcement, true
	case StageReinforcement:
		return StageUrgency, true
	default:
		return "", false
	}
}

type FollowupSequence struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	BatchID   string `json:"batchId"`
	Template  string `json:"template"`
	Offer     string `json:"offer"`
	VariantID string `json:"variantId,omitempty"`
	Score     int    `json:"score"`

	// Plan and Triggers shape the later stage texts.
	Plan     string    `json:"plan,omitempty"`
	Triggers []Trigger `json:"triggers,omitempty"`

	Stage Stage `json:"stage"`
	// NextStage and NextAt are empty once the sequence is terminal.
	NextStage    Stage     `json:"nextStage,omitempty"`
	NextAt       time.Time `json:"nextAt,omitempty"`
	Attempts     int       `json:"attempts"`
	StartedAt    time.Time `json:"startedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CancelReason string    `json:"cancelReason,omitempty"`
}

// Due reports whether the next stage should fire at now.
func (f FollowupSequence) Due(now time.Time) bool {
	return !f.Stage.Terminal() && f.NextStage != "" && !f.NextAt.After(now)
}
