// Package experiments runs A/B tests over message templates and offers.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
	"reactivation/internal/random"
)

// DefaultDuration applies when a new experiment has no end date.
const DefaultDuration = 30 * 24 * time.Hour

type VariantSpec struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Offer    string `json:"offer"`
}

type ExperimentSpec struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartsAt    time.Time     `json:"startsAt"`
	EndsAt      time.Time     `json:"endsAt"`
	Variants    []VariantSpec `json:"variants"`
	// Weights is optional; empty means uniform.
	Weights []float64 `json:"weights"`
}

type Tracker struct {
	repo  ports.ExperimentRepository
	clock clockwork.Clock
	rng   *random.Source
	log   *zap.Logger
}

func New(repo ports.ExperimentRepository, clock clockwork.Clock, rng *random.Source, log *zap.Logger) *Tracker {
	return &Tracker{repo: repo, clock: clock, rng: rng, log: log}
}

func (t *Tracker) CreateExperiment(ctx context.Context, spec ExperimentSpec) (domain.Experiment, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return domain.Experiment{}, fmt.Errorf("%w: experiment name is required", domain.ErrInvalidInput)
	}
	if len(spec.Variants) < 2 {
		return domain.Experiment{}, fmt.Errorf("%w: an experiment needs at least two variants", domain.ErrInvalidInput)
	}
	if len(spec.Weights) > 0 {
		if len(spec.Weights) != len(spec.Variants) {
			return domain.Experiment{}, fmt.Errorf("%w: %d weights for %d variants", domain.ErrInvalidInput, len(spec.Weights), len(spec.Variants))
		}
		if err := validateWeights(spec.Weights); err != nil {
			return domain.Experiment{}, err
		}
	}
	now := t.clock.Now()
	starts, ends := spec.StartsAt, spec.EndsAt
	if starts.IsZero() {
		starts = now
	}
	if ends.IsZero() {
		ends = starts.Add(DefaultDuration)
	}
	if !ends.After(starts) {
		return domain.Experiment{}, fmt.Errorf("%w: experiment must end after it starts", domain.ErrInvalidInput)
	}

	exp := domain.Experiment{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		Description: spec.Description,
		StartsAt:    starts,
		EndsAt:      ends,
		Status:      domain.ExperimentActive,
		Weights:     append([]float64(nil), spec.Weights...),
		CreatedAt:   now,
	}
	for i, v := range spec.Variants {
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("Variante %d", i+1)
		}
		exp.Variants = append(exp.Variants, domain.Variant{
			ID:       fmt.Sprintf("%s-v%d", exp.ID, i+1),
			Index:    i,
			Name:     name,
			Template: v.Template,
			Offer:    v.Offer,
			Revenue:  decimal.Zero,
		})
	}
	if err := t.repo.CreateExperiment(ctx, exp); err != nil {
		return domain.Experiment{}, fmt.Errorf("create experiment: %w", err)
	}
	t.log.Info("experiment created", zap.String("experiment_id", exp.ID), zap.String("name", exp.Name), zap.Int("variants", len(exp.Variants)))
	return exp, nil
}

func validateWeights(weights []float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: weights must not be negative", domain.ErrInvalidInput)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: weights must have a positive sum", domain.ErrInvalidInput)
	}
	return nil
}

// AssignVariant draws a variant by weight. Closed or out-of-window
// experiments assign nothing.
func (t *Tracker) AssignVariant(ctx context.Context, experimentID string) (domain.Variant, error) {
	exp, err := t.repo.GetExperiment(ctx, experimentID)
	if err != nil {
		return domain.Variant{}, err
	}
	if exp.Finalized() {
		return domain.Variant{}, fmt.Errorf("experiment %s: %w", exp.ID, domain.ErrExperimentFinalized)
	}
	now := t.clock.Now()
	if now.Before(exp.StartsAt) || now.After(exp.EndsAt) {
		return domain.Variant{}, fmt.Errorf("experiment %s: %w", exp.ID, domain.ErrExperimentInactive)
	}
	weights := exp.Weights
	if len(weights) != len(exp.Variants) {
		weights = uniform(len(exp.Variants))
	}
	return exp.Variants[Pick(weights, t.rng.Float64())], nil
}

func uniform(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// Pick maps a uniform draw u in [0,1) onto the weights: it scales u by the
// weight sum and returns the first index whose cumulative weight exceeds it.
func Pick(weights []float64, u float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := u * total
	acc := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if r < acc {
			return i
		}
	}
	return last
}

// RecordSend counts one delivered message for the variant.
func (t *Tracker) RecordSend(ctx context.Context, variantID string) error {
	if err := t.repo.IncrementSends(ctx, variantID); err != nil {
		return fmt.Errorf("record send for %s: %w", variantID, err)
	}
	return nil
}

func (t *Tracker) RecordConversion(ctx context.Context, variantID string, revenue decimal.Decimal) error {
	if revenue.IsNegative() {
		return fmt.Errorf("%w: revenue must not be negative", domain.ErrInvalidInput)
	}
	if err := t.repo.AddConversion(ctx, variantID, revenue); err != nil {
		return fmt.Errorf("record conversion for %s: %w", variantID, err)
	}
	return nil
}

type Result struct {
	Experiment domain.Experiment `json:"experiment"`
	Winner     domain.Variant    `json:"winner"`
	Report     Report            `json:"report"`
}

// Finalize closes the experiment and declares the variant with the
// strictly greatest conversion rate; ties go to the earlier variant.
func (t *Tracker) Finalize(ctx context.Context, experimentID string) (Result, error) {
	exp, err := t.repo.FinalizeExperiment(ctx, experimentID, t.clock.Now(), func(e domain.Experiment) (string, error) {
		i := domain.PickWinner(e.Variants)
		if i < 0 {
			return "", errors.New("experiment has no variants")
		}
		return e.Variants[i].ID, nil
	})
	if err != nil {
		return Result{}, err
	}
	winner, _ := exp.Variant(exp.WinnerID)
	t.log.Info("experiment finalized",
		zap.String("experiment_id", exp.ID),
		zap.String("winner", winner.Name),
		zap.Float64("conversion_rate", winner.ConversionRate()))
	return Result{Experiment: exp, Winner: winner, Report: BuildReport(exp)}, nil
}

// Report is read-only and works on open and closed experiments.
func (t *Tracker) Report(ctx context.Context, experimentID string) (Report, error) {
	exp, err := t.repo.GetExperiment(ctx, experimentID)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(exp), nil
}

func (t *Tracker) Get(ctx context.Context, experimentID string) (domain.Experiment, error) {
	return t.repo.GetExperiment(ctx, experimentID)
}

func (t *Tracker) List(ctx context.Context) ([]domain.Experiment, error) {
	return t.repo.ListExperiments(ctx)
}
