package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

const experimentColumns = `id, name, description, starts_at, ends_at, status, weights, winner_id, finalized_at, created_at`

func (s *Store) CreateExperiment(ctx context.Context, exp domain.Experiment) (err error) {
	weights, err := json.Marshal(exp.Weights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create experiment: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO experiments (`+experimentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.Name, exp.Description, toMillis(exp.StartsAt), toMillis(exp.EndsAt), string(exp.Status),
		string(weights), exp.WinnerID, toMillis(exp.FinalizedAt), toMillis(exp.CreatedAt)); err != nil {
		return fmt.Errorf("insert experiment: %w", err)
	}
	for _, v := range exp.Variants {
		if _, err = tx.ExecContext(ctx, `INSERT INTO variants
			(id, experiment_id, idx, name, template, offer, sends, conversions, revenue)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, exp.ID, v.Index, v.Name, v.Template, v.Offer, v.Sends, v.Conversions, v.Revenue.String()); err != nil {
			return fmt.Errorf("insert variant %s: %w", v.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit experiment: %w", err)
	}
	return nil
}

func loadExperiment(ctx context.Context, q queryer, id string) (domain.Experiment, error) {
	var exp domain.Experiment
	var startsAt, endsAt, finalizedAt, createdAt int64
	var status, weights string
	err := q.QueryRowContext(ctx, `SELECT `+experimentColumns+` FROM experiments WHERE id = ?`, id).Scan(
		&exp.ID, &exp.Name, &exp.Description, &startsAt, &endsAt, &status, &weights, &exp.WinnerID,
		&finalizedAt, &createdAt)
	if notFound(err) {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("load experiment: %w", err)
	}
	exp.StartsAt, exp.EndsAt = fromMillis(startsAt), fromMillis(endsAt)
	exp.FinalizedAt, exp.CreatedAt = fromMillis(finalizedAt), fromMillis(createdAt)
	exp.Status = domain.ExperimentStatus(status)
	if err := json.Unmarshal([]byte(weights), &exp.Weights); err != nil {
		return domain.Experiment{}, fmt.Errorf("decode weights: %w", err)
	}
	if len(exp.Weights) == 0 {
		exp.Weights = nil
	}

	rows, err := q.QueryContext(ctx, `SELECT id, idx, name, template, offer, sends, conversions, revenue
		FROM variants WHERE experiment_id = ? ORDER BY idx`, id)
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("load variants: %w", err)
	}
	exp.Variants, err = collect(rows, func(row scanner) (domain.Variant, error) {
		var v domain.Variant
		var revenue string
		if err := row.Scan(&v.ID, &v.Index, &v.Name, &v.Template, &v.Offer, &v.Sends, &v.Conversions, &revenue); err != nil {
			return domain.Variant{}, err
		}
		r, err := parseDecimal(revenue)
		if err != nil {
			return domain.Variant{}, fmt.Errorf("variant %s revenue: %w", v.ID, err)
		}
		v.Revenue = r
		return v, nil
	})
	if err != nil {
		return domain.Experiment{}, err
	}
	return exp, nil
}

func (s *Store) GetExperiment(ctx context.Context, id string) (domain.Experiment, error) {
	return loadExperiment(ctx, s.db, id)
}

func (s *Store) ExperimentByVariant(ctx context.Context, variantID string) (domain.Experiment, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT experiment_id FROM variants WHERE id = ?`, variantID).Scan(&id)
	if notFound(err) {
		return domain.Experiment{}, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("experiment by variant: %w", err)
	}
	return loadExperiment(ctx, s.db, id)
}

func (s *Store) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM experiments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}
	ids, err := collect(rows, func(row scanner) (string, error) {
		var id string
		return id, row.Scan(&id)
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Experiment, 0, len(ids))
	for _, id := range ids {
		exp, err := loadExperiment(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, nil
}

// updateVariant runs one counter update guarded on the experiment still
// being active, then tells a missing variant from a closed experiment.
func (s *Store) updateVariant(ctx context.Context, variantID, set string, args ...any) error {
	args = append(args, variantID, string(domain.ExperimentActive))
	res, err := s.db.ExecContext(ctx, `UPDATE variants SET `+set+` WHERE id = ? AND experiment_id IN
		(SELECT id FROM experiments WHERE status = ?)`, args...)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	ok, err := affected(res)
	if err != nil || ok {
		return err
	}
	var expID string
	err = s.db.QueryRowContext(ctx, `SELECT experiment_id FROM variants WHERE id = ?`, variantID).Scan(&expID)
	if notFound(err) {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return fmt.Errorf("experiment %s: %w", expID, domain.ErrExperimentFinalized)
}

func (s *Store) IncrementSends(ctx context.Context, variantID string) error {
	return s.updateVariant(ctx, variantID, `sends = sends + 1`)
}

// AddConversion keeps revenue as exact decimal text, so the sum happens in Go
// inside a transaction rather than in SQL.
func (s *Store) AddConversion(ctx context.Context, variantID string, revenue decimal.Decimal) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add conversion: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	var raw, status, expID string
	err = tx.QueryRowContext(ctx, `SELECT v.revenue, e.status, e.id FROM variants v
		JOIN experiments e ON e.id = v.experiment_id WHERE v.id = ?`, variantID).Scan(&raw, &status, &expID)
	if notFound(err) {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load variant: %w", err)
	}
	if domain.ExperimentStatus(status) == domain.ExperimentFinalized {
		return fmt.Errorf("experiment %s: %w", expID, domain.ErrExperimentFinalized)
	}
	current, err := parseDecimal(raw)
	if err != nil {
		return fmt.Errorf("variant %s revenue: %w", variantID, err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE variants SET conversions = conversions + 1, revenue = ? WHERE id = ?`,
		current.Add(revenue).String(), variantID); err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit conversion: %w", err)
	}
	return nil
}

func (s *Store) FinalizeExperiment(ctx context.Context, id string, at time.Time, choose func(domain.Experiment) (string, error)) (_ domain.Experiment, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("begin finalize: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	exp, err := loadExperiment(ctx, tx, id)
	if err != nil {
		return domain.Experiment{}, err
	}
	if exp.Finalized() {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrExperimentFinalized)
	}
	winner, err := choose(exp)
	if err != nil {
		return domain.Experiment{}, err
	}
	if err = finalize(ctx, tx, id, winner, at); err != nil {
		return domain.Experiment{}, err
	}
	if err = tx.Commit(); err != nil {
		return domain.Experiment{}, fmt.Errorf("commit finalize: %w", err)
	}
	exp.Status, exp.WinnerID, exp.FinalizedAt = domain.ExperimentFinalized, winner, at
	return exp, nil
}

func finalize(ctx context.Context, tx *sql.Tx, id, winner string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `UPDATE experiments SET status = ?, winner_id = ?, finalized_at = ? WHERE id = ?`,
		string(domain.ExperimentFinalized), winner, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("finalize experiment: %w", err)
	}
	return nil
}
