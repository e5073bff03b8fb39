package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

// OutreachRepository is the append-only approach ledger. Only the outcome of
// an existing record may change.
type OutreachRepository interface {
	AppendOutreach(ctx context.Context, rec domain.OutreachRecord) error
	// OutreachByPhone returns the phone's records oldest first.
	OutreachByPhone(ctx context.Context, phone string) ([]domain.OutreachRecord, error)
	// OutreachBetween returns records with from < At <= to, oldest first.
	OutreachBetween(ctx context.Context, from, to time.Time) ([]domain.OutreachRecord, error)
	UpdateOutreachOutcome(ctx context.Context, id string, outcome domain.Outcome) error
}

// BlacklistRepository keeps at most one entry per phone; upserts overwrite
// reason and timestamp.
type BlacklistRepository interface {
	UpsertBlacklist(ctx context.Context, entry domain.BlacklistEntry) error
	RemoveBlacklist(ctx context.Context, phone string) (removed bool, err error)
	GetBlacklist(ctx context.Context, phone string) (entry domain.BlacklistEntry, found bool, err error)
	ListBlacklist(ctx context.Context) ([]domain.BlacklistEntry, error)
}

// ReplyRepository stores classified inbound replies.
type ReplyRepository interface {
	AppendReply(ctx context.Context, reply domain.InboundReply) error
	RepliesBetween(ctx context.Context, from, to time.Time) ([]domain.InboundReply, error)
}

// ConversionRepository stores registered conversions.
type ConversionRepository interface {
	AppendConversion(ctx context.Context, conv domain.Conversion) error
	ConversionsBetween(ctx context.Context, from, to time.Time) ([]domain.Conversion, error)
}

// LeadRepository tracks members waiting for a human follow-up.
type LeadRepository interface {
	UpsertLead(ctx context.Context, lead domain.HotLead) error
	GetLead(ctx context.Context, phone string) (lead domain.HotLead, found bool, err error)
	ListLeads(ctx context.Context, status domain.LeadStatus) ([]domain.HotLead, error)
	LeadsRepliedBetween(ctx context.Context, from, to time.Time) ([]domain.HotLead, error)
}

// ExperimentRepository persists experiments. Counter updates are atomic and
// fail with domain.ErrExperimentFinalized once the experiment is closed.
type ExperimentRepository interface {
	CreateExperiment(ctx context.Context, exp domain.Experiment) error
	GetExperiment(ctx context.Context, id string) (domain.Experiment, error)
	ExperimentByVariant(ctx context.Context, variantID string) (domain.Experiment, error)
	ListExperiments(ctx context.Context) ([]domain.Experiment, error)
	IncrementSends(ctx context.Context, variantID string) error
	AddConversion(ctx context.Context, variantID string, revenue decimal.Decimal) error
	// FinalizeExperiment loads the experiment inside one transaction, asks
	// choose for the winner and closes it. A closed experiment yields
	// domain.ErrExperimentFinalized.
	FinalizeExperiment(ctx context.Context, id string, at time.Time, choose func(domain.Experiment) (string, error)) (domain.Experiment, error)
}

// BatchRepository parks generated batches for the approval gate.
type BatchRepository interface {
	SaveBatch(ctx context.Context, batch domain.Batch) error
	GetBatch(ctx context.Context, id string) (domain.Batch, error)
	LatestBatch(ctx context.Context) (domain.Batch, error)
	// TransitionBatch moves a batch from one status to another and reports
	// whether the batch was still in the from status.
	TransitionBatch(ctx context.Context, id string, from, to domain.BatchStatus, at time.Time) (bool, error)
}
