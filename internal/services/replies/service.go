package replies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

const optOutReason = "Opt-out via WhatsApp"

// Inbound is the webhook payload after transport decoding.
type Inbound struct {
	From        string    `json:"from"`
	Body        string    `json:"body"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayName string    `json:"displayName"`
}

// Blacklister adds phones to the permanent do-not-contact list.
type Blacklister interface {
	AddToBlacklist(ctx context.Context, phone, reason string) (domain.BlacklistEntry, error)
}

type Service struct {
	replies   ports.ReplyRepository
	outreach  ports.OutreachRepository
	leads     ports.LeadRepository
	blacklist Blacklister
	sequences ports.SequenceCanceller
	events    ports.EventPublisher
	clock     clockwork.Clock
	log       *zap.Logger
}

func NewService(replies ports.ReplyRepository, outreach ports.OutreachRepository, leads ports.LeadRepository,
	blacklist Blacklister, sequences ports.SequenceCanceller, events ports.EventPublisher,
	clock clockwork.Clock, log *zap.Logger) *Service {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &Service{
		replies:   replies,
		outreach:  outreach,
		leads:     leads,
		blacklist: blacklist,
		sequences: sequences,
		events:    events,
		clock:     clock,
		log:       log,
	}
}

// Ingest stores and classifies one inbound reply. Opt-outs are blacklisted
// and interested members become hot leads; both stop the automated sequence.
// Side-effect failures after the reply is stored are logged, not returned.
func (s *Service) Ingest(ctx context.Context, in Inbound) (domain.InboundReply, error) {
	phone, err := domain.ParsePhone(in.From)
	if err != nil {
		return domain.InboundReply{}, err
	}
	at := in.Timestamp
	if at.IsZero() {
		at = s.clock.Now()
	}
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = "Desconhecido"
	}
	reply := domain.InboundReply{
		ID:          uuid.NewString(),
		Phone:       phone,
		DisplayName: name,
		Text:        in.Body,
		At:          at,
		Intent:      Classify(in.Body),
	}
	if err := s.replies.AppendReply(ctx, reply); err != nil {
		return domain.InboundReply{}, fmt.Errorf("store reply: %w", err)
	}
	log := s.log.With(zap.String("phone", phone), zap.String("intent", string(reply.Intent)))
	log.Info("reply received")

	s.markLatestOutreach(ctx, log, phone, reply.Intent)

	switch reply.Intent {
	case domain.IntentOptOut:
		if _, err := s.blacklist.AddToBlacklist(ctx, phone, optOutReason); err != nil {
			log.Error("blacklist after opt-out failed", zap.Error(err))
		}
		s.cancelSequence(ctx, log, phone, "opt-out reply")
		s.publish(ctx, log, ports.EventBlacklist, phone, map[string]string{"phone": phone, "reason": optOutReason})
	case domain.IntentInterested:
		if err := s.markHot(ctx, reply); err != nil {
			log.Error("hot lead update failed", zap.Error(err))
		}
		s.cancelSequence(ctx, log, phone, "interested reply")
		s.publish(ctx, log, ports.EventHotLead, phone, reply)
	}
	s.publish(ctx, log, ports.EventReply, phone, reply)
	return reply, nil
}

func (s *Service) cancelSequence(ctx context.Context, log *zap.Logger, phone, reason string) {
	if err := s.sequences.CancelSequence(ctx, phone, reason); err != nil {
		log.Error("cancel follow-up failed", zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, log *zap.Logger, kind, key string, payload any) {
	if err := s.events.Publish(ctx, kind, key, payload); err != nil {
		log.Warn("publish event failed", zap.String("event", kind), zap.Error(err))
	}
}

var intentOutcome = map[domain.Intent]domain.Outcome{
	domain.IntentInterested: domain.OutcomeInterested,
	domain.IntentOptOut:     domain.OutcomeOptedOut,
	domain.IntentQuestion:   domain.OutcomeReplied,
	domain.IntentNeutral:    domain.OutcomeReplied,
}

// markLatestOutreach moves the outcome of the phone's last delivered
// approach. A conversion is never overwritten.
func (s *Service) markLatestOutreach(ctx context.Context, log *zap.Logger, phone string, intent domain.Intent) {
	recs, err := s.outreach.OutreachByPhone(ctx, phone)
	if err != nil {
		log.Error("load outreach history failed", zap.Error(err))
		return
	}
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		if !rec.Outcome.Delivered() {
			continue
		}
		if rec.Outcome == domain.OutcomeConverted {
			return
		}
		if err := s.outreach.UpdateOutreachOutcome(ctx, rec.ID, intentOutcome[intent]); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Error("update outreach outcome failed", zap.Error(err))
		}
		return
	}
}

// markHot creates the pending lead. An existing lead keeps its first reply
// and status.
func (s *Service) markHot(ctx context.Context, reply domain.InboundReply) error {
	_, found, err := s.leads.GetLead(ctx, reply.Phone)
	if err != nil || found {
		return err
	}
	return s.leads.UpsertLead(ctx, domain.HotLead{
		Phone:      reply.Phone,
		Name:       reply.DisplayName,
		FirstReply: reply.Text,
		RepliedAt:  reply.At,
		Status:     domain.LeadPending,
		UpdatedAt:  s.clock.Now(),
	})
}
