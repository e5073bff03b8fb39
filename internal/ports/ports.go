package ports

import (
	"context"

	"reactivation/internal/domain"
)

// PopulationSource reads the lapsed-member population.
type PopulationSource interface {
	FetchInactive(ctx context.Context) ([]domain.CustomerRecord, error)
}

// Sender delivers one outbound message. No retry is expected from callers.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

// OfferGenerator picks an offer for a scored member. ByKey resolves the
// offer keys experiment variants name.
type OfferGenerator interface {
	OfferFor(sc domain.ScoredCustomer) domain.Offer
	ByKey(key string) (domain.Offer, bool)
}

// MessageComposer renders the opening message and the later stage messages,
// and picks the trigger mix those stages lean on.
type MessageComposer interface {
	Compose(sc domain.ScoredCustomer, template string, offer domain.Offer) string
	StageMessage(seq domain.FollowupSequence, stage domain.Stage) string
	ProfileTriggers(c domain.CustomerRecord, daysInactive int) domain.TriggerProfile
	StageTriggers(seq domain.FollowupSequence, stage domain.Stage) []domain.Trigger
}

// SequenceCanceller stops the automated follow-up for a phone.
type SequenceCanceller interface {
	CancelSequence(ctx context.Context, phone, reason string) error
}

// Event kinds published on the campaign topic.
const (
	EventOutreach   = "outreach.recorded"
	EventReply      = "reply.received"
	EventHotLead    = "lead.interested"
	EventConversion = "conversion.recorded"
	EventBlacklist  = "blacklist.updated"
	EventBatch      = "batch.prepared"
)

// EventPublisher forwards campaign events to dashboards. Publishing is best
// effort; callers log failures and move on.
type EventPublisher interface {
	Publish(ctx context.Context, kind, key string, payload any) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// Store is the full record store a backing engine provides.
type Store interface {
	OutreachRepository
	BlacklistRepository
	ReplyRepository
	ConversionRepository
	LeadRepository
	ExperimentRepository
	BatchRepository
	SequenceRepository
	Close() error
}
