package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"reactivation/internal/domain"
)

// querier is satisfied by the pool and by a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (db *DB) CreateExperiment(ctx context.Context, exp domain.Experiment) (err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create experiment: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	weights := exp.Weights
	if weights == nil {
		weights = []float64{}
	}
	if _, err = tx.Exec(ctx, `
        INSERT INTO experiments (id, name, description, starts_at, ends_at, status, weights, winner_id, finalized_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, exp.ID, exp.Name, exp.Description, exp.StartsAt, exp.EndsAt, string(exp.Status), weights,
		exp.WinnerID, nullTime(exp.FinalizedAt), exp.CreatedAt); err != nil {
		return fmt.Errorf("insert experiment: %w", err)
	}
	batch := &pgx.Batch{}
	for _, v := range exp.Variants {
		batch.Queue(`
            INSERT INTO variants (id, experiment_id, idx, name, template, offer, sends, conversions, revenue)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric)
        `, v.ID, exp.ID, v.Index, v.Name, v.Template, v.Offer, v.Sends, v.Conversions, v.Revenue.String())
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert variants: %w", err)
	}
	return nil
}

func loadExperiment(ctx context.Context, q querier, id string, lock bool) (domain.Experiment, error) {
	query := `SELECT id, name, description, starts_at, ends_at, status, weights, winner_id, finalized_at, created_at
        FROM experiments WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var exp domain.Experiment
	var status string
	var finalizedAt *time.Time
	err := q.QueryRow(ctx, query, id).Scan(&exp.ID, &exp.Name, &exp.Description, &exp.StartsAt, &exp.EndsAt,
		&status, &exp.Weights, &exp.WinnerID, &finalizedAt, &exp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("load experiment: %w", err)
	}
	exp.StartsAt, exp.EndsAt, exp.CreatedAt = exp.StartsAt.UTC(), exp.EndsAt.UTC(), exp.CreatedAt.UTC()
	exp.FinalizedAt = derefTime(finalizedAt)
	exp.Status = domain.ExperimentStatus(status)
	if len(exp.Weights) == 0 {
		exp.Weights = nil
	}

	rows, err := q.Query(ctx, `
        SELECT id, idx, name, template, offer, sends, conversions, revenue::text
        FROM variants WHERE experiment_id = $1 ORDER BY idx
    `, id)
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("load variants: %w", err)
	}
	exp.Variants, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Variant, error) {
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

func (db *DB) GetExperiment(ctx context.Context, id string) (domain.Experiment, error) {
	return loadExperiment(ctx, db.Pool, id, false)
}

func (db *DB) ExperimentByVariant(ctx context.Context, variantID string) (domain.Experiment, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `SELECT experiment_id FROM variants WHERE id = $1`, variantID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Experiment{}, fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("experiment by variant: %w", err)
	}
	return loadExperiment(ctx, db.Pool, id, false)
}

func (db *DB) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id FROM experiments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}
	out := make([]domain.Experiment, 0, len(ids))
	for _, id := range ids {
		exp, err := loadExperiment(ctx, db.Pool, id, false)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, nil
}

// updateVariant applies one counter update guarded on the experiment still
// being active, then tells a missing variant from a closed experiment.
func (db *DB) updateVariant(ctx context.Context, variantID, set string, args ...any) error {
	args = append(args, variantID, string(domain.ExperimentActive))
	n := len(args)
	tag, err := db.Pool.Exec(ctx, fmt.Sprintf(`
        UPDATE variants SET %s
        WHERE id = $%d AND experiment_id IN (SELECT id FROM experiments WHERE status = $%d)
    `, set, n-1, n), args...)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var expID string
	err = db.Pool.QueryRow(ctx, `SELECT experiment_id FROM variants WHERE id = $1`, variantID).Scan(&expID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return fmt.Errorf("experiment %s: %w", expID, domain.ErrExperimentFinalized)
}

func (db *DB) IncrementSends(ctx context.Context, variantID string) error {
	return db.updateVariant(ctx, variantID, `sends = sends + 1`)
}

func (db *DB) AddConversion(ctx context.Context, variantID string, revenue decimal.Decimal) error {
	return db.updateVariant(ctx, variantID, `conversions = conversions + 1, revenue = revenue + $1::numeric`, revenue.String())
}

func (db *DB) FinalizeExperiment(ctx context.Context, id string, at time.Time, choose func(domain.Experiment) (string, error)) (exp domain.Experiment, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Experiment{}, fmt.Errorf("begin finalize: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	exp, err = loadExperiment(ctx, tx, id, true)
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
	if _, err = tx.Exec(ctx, `UPDATE experiments SET status = $1, winner_id = $2, finalized_at = $3 WHERE id = $4`,
		string(domain.ExperimentFinalized), winner, at, id); err != nil {
		return domain.Experiment{}, fmt.Errorf("finalize experiment: %w", err)
	}
	exp.Status, exp.WinnerID, exp.FinalizedAt = domain.ExperimentFinalized, winner, at
	return exp, nil
}
