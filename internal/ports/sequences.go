package ports

import (
	"context"
	"time"

	"reactivation/internal/domain"
)

// SequenceRepository persists follow-up state so sequences survive restarts.
// Writes are compare-and-set on the current stage: a cancelled sequence can
// never be moved forward by a stage that was already in flight.
type SequenceRepository interface {
	GetSequence(ctx context.Context, phone string) (seq domain.FollowupSequence, found bool, err error)
	// StartSequence stores a new sequence, replacing a terminal one. It fails
	// with domain.ErrSequenceActive when the phone has a live sequence.
	StartSequence(ctx context.Context, seq domain.FollowupSequence) error
	// TransitionSequence replaces the sequence when its stored stage still
	// equals from.
	TransitionSequence(ctx context.Context, from domain.Stage, next domain.FollowupSequence) (bool, error)
	// CancelSequence moves a live sequence to CANCELLED.
	CancelSequence(ctx context.Context, phone, reason string, at time.Time) (bool, error)
	// DueSequences lists live sequences whose next stage is due at now,
	// earliest first.
	DueSequences(ctx context.Context, now time.Time, limit int) ([]domain.FollowupSequence, error)
	ListSequences(ctx context.Context, stage domain.Stage) ([]domain.FollowupSequence, error)
}
