// Package memory is a process-local ports.Store used by tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

var _ ports.Store = (*Store)(nil)

type Store struct {
	mu          sync.Mutex
	outreach    []domain.OutreachRecord
	blacklist   map[string]domain.BlacklistEntry
	replies     []domain.InboundReply
	conversions []domain.Conversion
	leads       map[string]domain.HotLead
	experiments map[string]domain.Experiment
	expOrder    []string
	batches     map[string]domain.Batch
	batchOrder  []string
	sequences   map[string]domain.FollowupSequence
}

func New() *Store {
	return &Store{
		blacklist:   map[string]domain.BlacklistEntry{},
		leads:       map[string]domain.HotLead{},
		experiments: map[string]domain.Experiment{},
		batches:     map[string]domain.Batch{},
		sequences:   map[string]domain.FollowupSequence{},
	}
}

func (s *Store) Close() error { return nil }

func within(at, from, to time.Time) bool { return at.After(from) && !at.After(to) }

// Outreach

func (s *Store) AppendOutreach(_ context.Context, rec domain.OutreachRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outreach = append(s.outreach, rec)
	return nil
}

func (s *Store) OutreachByPhone(_ context.Context, phone string) ([]domain.OutreachRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OutreachRecord
	for _, r := range s.outreach {
		if r.Phone == phone {
			out = append(out, r)
		}
	}
	sortOutreach(out)
	return out, nil
}

func (s *Store) OutreachBetween(_ context.Context, from, to time.Time) ([]domain.OutreachRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OutreachRecord
	for _, r := range s.outreach {
		if within(r.At, from, to) {
			out = append(out, r)
		}
	}
	sortOutreach(out)
	return out, nil
}

func sortOutreach(recs []domain.OutreachRecord) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].At.Before(recs[j].At) })
}

func (s *Store) UpdateOutreachOutcome(_ context.Context, id string, outcome domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outreach {
		if s.outreach[i].ID == id {
			s.outreach[i].Outcome = outcome
			return nil
		}
	}
	return fmt.Errorf("outreach %s: %w", id, domain.ErrNotFound)
}

// Blacklist

func (s *Store) UpsertBlacklist(_ context.Context, entry domain.BlacklistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[entry.Phone] = entry
	return nil
}

func (s *Store) RemoveBlacklist(_ context.Context, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklist[phone]
	delete(s.blacklist, phone)
	return ok, nil
}

func (s *Store) GetBlacklist(_ context.Context, phone string) (domain.BlacklistEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blacklist[phone]
	return e, ok, nil
}

func (s *Store) ListBlacklist(_ context.Context) ([]domain.BlacklistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BlacklistEntry, 0, len(s.blacklist))
	for _, e := range s.blacklist {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}

// Replies

func (s *Store) AppendReply(_ context.Context, reply domain.InboundReply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
	return nil
}

func (s *Store) RepliesBetween(_ context.Context, from, to time.Time) ([]domain.InboundReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.InboundReply
	for _, r := range s.replies {
		if within(r.At, from, to) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// Conversions

func (s *Store) AppendConversion(_ context.Context, conv domain.Conversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions = append(s.conversions, conv)
	return nil
}

func (s *Store) ConversionsBetween(_ context.Context, from, to time.Time) ([]domain.Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Conversion
	for _, c := range s.conversions {
		if within(c.At, from, to) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// Leads

func (s *Store) UpsertLead(_ context.Context, lead domain.HotLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.Phone] = lead
	return nil
}

func (s *Store) GetLead(_ context.Context, phone string) (domain.HotLead, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[phone]
	return l, ok, nil
}

func (s *Store) ListLeads(_ context.Context, status domain.LeadStatus) ([]domain.HotLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.HotLead
	for _, l := range s.leads {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RepliedAt.Before(out[j].RepliedAt) })
	return out, nil
}

func (s *Store) LeadsRepliedBetween(_ context.Context, from, to time.Time) ([]domain.HotLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.HotLead
	for _, l := range s.leads {
		if within(l.RepliedAt, from, to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RepliedAt.Before(out[j].RepliedAt) })
	return out, nil
}

// Experiments

func cloneExperiment(e domain.Experiment) domain.Experiment {
	e.Variants = append([]domain.Variant(nil), e.Variants...)
	e.Weights = append([]float64(nil), e.Weights...)
	return e
}

func (s *Store) CreateExperiment(_ context.Context, exp domain.Experiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.experiments[exp.ID]; ok {
		return fmt.Errorf("experiment %s exists: %w", exp.ID, domain.ErrInvalidInput)
	}
	s.experiments[exp.ID] = cloneExperiment(exp)
	s.expOrder = append(s.expOrder, exp.ID)
	return nil
}

func (s *Store) GetExperiment(_ context.Context, id string) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.experiments[id]
	if !ok {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
	}
	return cloneExperiment(e), nil
}

func (s *Store) ExperimentByVariant(_ context.Context, variantID string) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.expOrder {
		e := s.experiments[id]
		if _, ok := e.Variant(variantID); ok {
			return cloneExperiment(e), nil
		}
	}
	return domain.Experiment{}, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
}

func (s *Store) ListExperiments(_ context.Context) ([]domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Experiment, 0, len(s.expOrder))
	for _, id := range s.expOrder {
		out = append(out, cloneExperiment(s.experiments[id]))
	}
	return out, nil
}

// updateVariant applies fn to the variant under the store lock.
func (s *Store) updateVariant(variantID string, fn func(*domain.Variant)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.expOrder {
		e := s.experiments[id]
		for i := range e.Variants {
			if e.Variants[i].ID != variantID {
				continue
			}
			if e.Finalized() {
				return fmt.Errorf("experiment %s: %w", e.ID, domain.ErrExperimentFinalized)
			}
			fn(&e.Variants[i])
			s.experiments[id] = e
			return nil
		}
	}
	return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
}

func (s *Store) IncrementSends(_ context.Context, variantID string) error {
	return s.updateVariant(variantID, func(v *domain.Variant) { v.Sends++ })
}

func (s *Store) AddConversion(_ context.Context, variantID string, revenue decimal.Decimal) error {
	return s.updateVariant(variantID, func(v *domain.Variant) {
		v.Conversions++
		v.Revenue = v.Revenue.Add(revenue)
	})
}

func (s *Store) FinalizeExperiment(_ context.Context, id string, at time.Time, choose func(domain.Experiment) (string, error)) (domain.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.experiments[id]
	if !ok {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
	}
	if e.Finalized() {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrExperimentFinalized)
	}
	winner, err := choose(cloneExperiment(e))
	if err != nil {
		return domain.Experiment{}, err
	}
	e.Status = domain.ExperimentFinalized
	e.WinnerID = winner
	e.FinalizedAt = at
	s.experiments[id] = e
	return cloneExperiment(e), nil
}

// Batches

func (s *Store) SaveBatch(_ context.Context, batch domain.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[batch.ID]; !ok {
		s.batchOrder = append(s.batchOrder, batch.ID)
	}
	s.batches[batch.ID] = batch
	return nil
}

func (s *Store) GetBatch(_ context.Context, id string) (domain.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[id]
	if !ok {
		return domain.Batch{}, fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

func (s *Store) LatestBatch(_ context.Context) (domain.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.batchOrder) == 0 {
		return domain.Batch{}, fmt.Errorf("latest batch: %w", domain.ErrNotFound)
	}
	return s.batches[s.batchOrder[len(s.batchOrder)-1]], nil
}

func (s *Store) TransitionBatch(_ context.Context, id string, from, to domain.BatchStatus, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[id]
	if !ok {
		return false, fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = at
	s.batches[id] = b
	return true, nil
}

// Sequences

func (s *Store) GetSequence(_ context.Context, phone string) (domain.FollowupSequence, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, ok := s.sequences[phone]
	return seq, ok, nil
}

func (s *Store) StartSequence(_ context.Context, seq domain.FollowupSequence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.sequences[seq.Phone]; ok && !cur.Stage.Terminal() {
		return fmt.Errorf("sequence %s: %w", seq.Phone, domain.ErrSequenceActive)
	}
	s.sequences[seq.Phone] = seq
	return nil
}

func (s *Store) TransitionSequence(_ context.Context, from domain.Stage, next domain.FollowupSequence) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sequences[next.Phone]
	if !ok {
		return false, fmt.Errorf("sequence %s: %w", next.Phone, domain.ErrNotFound)
	}
	if cur.Stage != from {
		return false, nil
	}
	s.sequences[next.Phone] = next
	return true, nil
}

func (s *Store) CancelSequence(_ context.Context, phone, reason string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sequences[phone]
	if !ok || cur.Stage.Terminal() {
		return false, nil
	}
	cur.Stage = domain.StageCancelled
	cur.NextStage = ""
	cur.NextAt = time.Time{}
	cur.CancelReason = reason
	cur.UpdatedAt = at
	s.sequences[phone] = cur
	return true, nil
}

func (s *Store) DueSequences(_ context.Context, now time.Time, limit int) ([]domain.FollowupSequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.FollowupSequence
	for _, seq := range s.sequences {
		if seq.Due(now) {
			out = append(out, seq)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NextAt.Equal(out[j].NextAt) {
			return out[i].Phone < out[j].Phone
		}
		return out[i].NextAt.Before(out[j].NextAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListSequences(_ context.Context, stage domain.Stage) ([]domain.FollowupSequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.FollowupSequence
	for _, seq := range s.sequences {
		if stage == "" || seq.Stage == stage {
			out = append(out, seq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}
