// Package selector filters the scored population down to the day's batch.
package selector

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
	"reactivation/internal/services/scoring"
)

const (
	// ExpectedConversionRate and TicketValue feed the batch projections.
	ExpectedConversionRate = 0.20
	TicketValue            = 119

	defaultBlacklistReason = "Solicitação do aluno"
)

// Policy is the configured selection envelope.
type Policy struct {
	CooldownDays    int
	ScoreFloor      int
	TightScoreFloor int
	MinBatch        int
	MaxBatch        int
}

func DefaultPolicy() Policy {
	return Policy{CooldownDays: 7, ScoreFloor: 20, TightScoreFloor: 30, MinBatch: 30, MaxBatch: 40}
}

// Quota is the adaptive part of the policy.
type Quota struct {
	Target     int `json:"target"`
	ScoreFloor int `json:"scoreFloor"`
}

type Selection struct {
	Date                string                  `json:"date"`
	Batch               []domain.ScoredCustomer `json:"batch"`
	Stats               domain.SelectionStats   `json:"stats"`
	Quota               Quota                   `json:"quota"`
	ExpectedConversions int                     `json:"expectedConversions"`
	ExpectedRevenue     int                     `json:"expectedRevenue"`
}

type Selector struct {
	blacklist ports.BlacklistRepository
	ledger    ports.OutreachRepository
	clock     clockwork.Clock
	log       *zap.Logger
	policy    Policy

	mu    sync.Mutex
	quota Quota
}

func New(blacklist ports.BlacklistRepository, ledger ports.OutreachRepository, clock clockwork.Clock, policy Policy, log *zap.Logger) *Selector {
	return &Selector{
		blacklist: blacklist,
		ledger:    ledger,
		clock:     clock,
		log:       log,
		policy:    policy,
		quota:     Quota{Target: policy.MaxBatch, ScoreFloor: policy.ScoreFloor},
	}
}

// Quota returns the current adaptive target and floor.
func (s *Selector) Quota() Quota {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quota
}

// AdaptQuota widens the intake when recent conversion is strong and narrows
// it with a tighter score floor when it is weak.
func (s *Selector) AdaptQuota(rate float64) Quota {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case rate > 0.25:
		s.quota = Quota{Target: s.policy.MaxBatch, ScoreFloor: s.policy.ScoreFloor}
	case rate < 0.15:
		s.quota = Quota{Target: s.policy.MinBatch, ScoreFloor: s.policy.TightScoreFloor}
	default:
		s.quota = Quota{Target: (s.policy.MinBatch + s.policy.MaxBatch) / 2, ScoreFloor: s.policy.ScoreFloor}
	}
	s.log.Info("selection quota adapted",
		zap.Float64("conversion_rate", rate),
		zap.Int("target", s.quota.Target),
		zap.Int("score_floor", s.quota.ScoreFloor))
	return s.quota
}

// SelectDailyBatch runs the filter chain over the scored population and
// returns the top targetSize survivors. A non-positive targetSize uses the
// adaptive quota. Each excluded member is counted under the first filter it
// fails. Rows sharing a normalized phone keep only the highest score.
func (s *Selector) SelectDailyBatch(ctx context.Context, population []domain.ScoredCustomer, targetSize int) (Selection, error) {
	quota := s.Quota()
	if targetSize <= 0 {
		targetSize = quota.Target
	}
	now := s.clock.Now()

	blacklisted, err := s.blacklistedPhones(ctx)
	if err != nil {
		return Selection{}, err
	}
	cooling, err := s.recentlyApproached(ctx, now)
	if err != nil {
		return Selection{}, err
	}

	stats := domain.SelectionStats{Total: len(population)}
	eligible := make([]domain.ScoredCustomer, 0, len(population))
	for _, sc := range population {
		phone := domain.NormalizePhone(sc.Customer.Phone)
		switch {
		case blacklisted[phone]:
			stats.ExcludedBlacklist++
		case cooling[phone]:
			stats.ExcludedCooldown++
		case sc.Score.Total < quota.ScoreFloor:
			stats.ExcludedScore++
		case !domain.ValidPhone(phone):
			stats.ExcludedInvalidPhone++
		default:
			eligible = append(eligible, sc)
		}
	}
	scoring.SortByScore(eligible)
	eligible, stats.ExcludedDuplicate = dedupe(eligible)
	stats.Eligible = len(eligible)

	batch := eligible[:min(targetSize, len(eligible))]
	stats.Selected = len(batch)
	stats.TierDistribution = scoring.Distribution(batch)
	stats.MeanScore = scoring.MeanScore(batch)

	s.log.Info("daily batch selected",
		zap.Int("total", stats.Total),
		zap.Int("eligible", stats.Eligible),
		zap.Int("selected", stats.Selected),
		zap.Int("excluded_blacklist", stats.ExcludedBlacklist),
		zap.Int("excluded_cooldown", stats.ExcludedCooldown),
		zap.Int("excluded_score", stats.ExcludedScore),
		zap.Int("excluded_duplicate", stats.ExcludedDuplicate))

	expected := float64(len(batch)) * ExpectedConversionRate
	return Selection{
		Date:                now.Format("2006-01-02"),
		Batch:               batch,
		Stats:               stats,
		Quota:               Quota{Target: targetSize, ScoreFloor: quota.ScoreFloor},
		ExpectedConversions: int(math.Round(expected)),
		ExpectedRevenue:     int(math.Round(expected * TicketValue)),
	}, nil
}

// dedupe keeps the first row per normalized phone of an already sorted slice.
func dedupe(sorted []domain.ScoredCustomer) ([]domain.ScoredCustomer, int) {
	seen := make(map[string]bool, len(sorted))
	out := sorted[:0]
	for _, sc := range sorted {
		phone := domain.NormalizePhone(sc.Customer.Phone)
		if seen[phone] {
			continue
		}
		seen[phone] = true
		out = append(out, sc)
	}
	return out, len(sorted) - len(out)
}

func (s *Selector) blacklistedPhones(ctx context.Context) (map[string]bool, error) {
	entries, err := s.blacklist.ListBlacklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blacklist: %w", err)
	}
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.Phone] = true
	}
	return set, nil
}

// recentlyApproached returns phones with a delivered approach strictly after
// now minus the cooldown.
func (s *Selector) recentlyApproached(ctx context.Context, now time.Time) (map[string]bool, error) {
	set := map[string]bool{}
	if s.policy.CooldownDays <= 0 {
		return set, nil
	}
	cutoff := now.AddDate(0, 0, -s.policy.CooldownDays)
	records, err := s.ledger.OutreachBetween(ctx, cutoff, now)
	if err != nil {
		return nil, fmt.Errorf("load recent outreach: %w", err)
	}
	for _, r := range records {
		if r.Outcome.Delivered() {
			set[r.Phone] = true
		}
	}
	return set, nil
}

// AddToBlacklist is idempotent: a second call refreshes reason and time.
func (s *Selector) AddToBlacklist(ctx context.Context, rawPhone, reason string) (domain.BlacklistEntry, error) {
	phone, err := domain.ParsePhone(rawPhone)
	if err != nil {
		return domain.BlacklistEntry{}, err
	}
	if reason == "" {
		reason = defaultBlacklistReason
	}
	entry := domain.BlacklistEntry{Phone: phone, Reason: reason, At: s.clock.Now()}
	if err := s.blacklist.UpsertBlacklist(ctx, entry); err != nil {
		return domain.BlacklistEntry{}, fmt.Errorf("blacklist %s: %w", phone, err)
	}
	s.log.Info("phone blacklisted", zap.String("phone", phone), zap.String("reason", reason))
	return entry, nil
}

// RemoveFromBlacklist reports whether an entry existed; removing an absent
// phone is not an error.
func (s *Selector) RemoveFromBlacklist(ctx context.Context, rawPhone string) (bool, error) {
	phone, err := domain.ParsePhone(rawPhone)
	if err != nil {
		return false, err
	}
	removed, err := s.blacklist.RemoveBlacklist(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("unblacklist %s: %w", phone, err)
	}
	if removed {
		s.log.Info("phone removed from blacklist", zap.String("phone", phone))
	}
	return removed, nil
}

func (s *Selector) IsBlacklisted(ctx context.Context, phone string) (bool, error) {
	_, found, err := s.blacklist.GetBlacklist(ctx, domain.NormalizePhone(phone))
	return found, err
}

func (s *Selector) Blacklist(ctx context.Context) ([]domain.BlacklistEntry, error) {
	return s.blacklist.ListBlacklist(ctx)
}
