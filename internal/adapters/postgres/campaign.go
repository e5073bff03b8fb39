package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"reactivation/internal/domain"
)

// BatchRepository

const batchColumns = `id, created_at, updated_at, status, items, stats, summary`

func scanBatch(row pgx.CollectableRow) (domain.Batch, error) {
	var b domain.Batch
	var status string
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &status, &b.Items, &b.Stats, &b.Summary); err != nil {
		return domain.Batch{}, err
	}
	b.CreatedAt, b.UpdatedAt = b.CreatedAt.UTC(), b.UpdatedAt.UTC()
	b.Status = domain.BatchStatus(status)
	return b, nil
}

func (db *DB) SaveBatch(ctx context.Context, b domain.Batch) error {
	items := b.Items
	if items == nil {
		items = []domain.BatchItem{}
	}
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO batches (`+batchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at, status = EXCLUDED.status,
            items = EXCLUDED.items, stats = EXCLUDED.stats, summary = EXCLUDED.summary
    `, b.ID, b.CreatedAt, b.UpdatedAt, string(b.Status), items, b.Stats, b.Summary)
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

func (db *DB) oneBatch(ctx context.Context, what, query string, args ...any) (domain.Batch, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("%s: %w", what, err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBatch)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Batch{}, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Batch{}, fmt.Errorf("%s: %w", what, err)
	}
	return b, nil
}

func (db *DB) GetBatch(ctx context.Context, id string) (domain.Batch, error) {
	return db.oneBatch(ctx, "batch "+id, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
}

func (db *DB) LatestBatch(ctx context.Context) (domain.Batch, error) {
	return db.oneBatch(ctx, "latest batch", `SELECT `+batchColumns+` FROM batches ORDER BY seq DESC LIMIT 1`)
}

func (db *DB) TransitionBatch(ctx context.Context, id string, from, to domain.BatchStatus, at time.Time) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `UPDATE batches SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(to), at, id, string(from))
	if err != nil {
		return false, fmt.Errorf("transition batch: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	var exists bool
	if err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM batches WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("transition batch: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	}
	return false, nil
}

// SequenceRepository

const sequenceColumns = `phone, name, batch_id, template, offer, variant_id, score, stage, next_stage, next_at,
    attempts, started_at, updated_at, cancel_reason, plan, triggers`

func scanSequence(row pgx.CollectableRow) (domain.FollowupSequence, error) {
	var q domain.FollowupSequence
	var stage, nextStage, triggers string
	var nextAt *time.Time
	if err := row.Scan(&q.Phone, &q.Name, &q.BatchID, &q.Template, &q.Offer, &q.VariantID, &q.Score, &stage,
		&nextStage, &nextAt, &q.Attempts, &q.StartedAt, &q.UpdatedAt, &q.CancelReason, &q.Plan, &triggers); err != nil {
		return domain.FollowupSequence{}, err
	}
	q.Triggers = domain.SplitTriggers(triggers)
	q.Stage, q.NextStage = domain.Stage(stage), domain.Stage(nextStage)
	q.NextAt = derefTime(nextAt)
	q.StartedAt, q.UpdatedAt = q.StartedAt.UTC(), q.UpdatedAt.UTC()
	return q, nil
}

func (db *DB) GetSequence(ctx context.Context, phone string) (domain.FollowupSequence, bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+sequenceColumns+` FROM sequences WHERE phone = $1`, phone)
	if err != nil {
		return domain.FollowupSequence{}, false, fmt.Errorf("get sequence: %w", err)
	}
	q, err := pgx.CollectExactlyOneRow(rows, scanSequence)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.FollowupSequence{}, false, nil
	}
	if err != nil {
		return domain.FollowupSequence{}, false, fmt.Errorf("get sequence: %w", err)
	}
	return q, true, nil
}

// StartSequence only overwrites a terminal row; a live one leaves the upsert
// with nothing to update.
func (db *DB) StartSequence(ctx context.Context, q domain.FollowupSequence) error {
	tag, err := db.Pool.Exec(ctx, `
        INSERT INTO sequences (`+sequenceColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, batch_id = EXCLUDED.batch_id,
            template = EXCLUDED.template, offer = EXCLUDED.offer, variant_id = EXCLUDED.variant_id,
            score = EXCLUDED.score, stage = EXCLUDED.stage, next_stage = EXCLUDED.next_stage,
            next_at = EXCLUDED.next_at, attempts = EXCLUDED.attempts, started_at = EXCLUDED.started_at,
            updated_at = EXCLUDED.updated_at, cancel_reason = EXCLUDED.cancel_reason, plan = EXCLUDED.plan,
            triggers = EXCLUDED.triggers
        WHERE sequences.stage IN ('DONE', 'CANCELLED')
    `, q.Phone, q.Name, q.BatchID, q.Template, q.Offer, q.VariantID, q.Score, string(q.Stage),
		string(q.NextStage), nullTime(q.NextAt), q.Attempts, q.StartedAt, q.UpdatedAt, q.CancelReason,
		q.Plan, domain.JoinTriggers(q.Triggers))
	if err != nil {
		return fmt.Errorf("start sequence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sequence %s: %w", q.Phone, domain.ErrSequenceActive)
	}
	return nil
}

func (db *DB) TransitionSequence(ctx context.Context, from domain.Stage, next domain.FollowupSequence) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE sequences SET name = $1, batch_id = $2, template = $3, offer = $4, variant_id = $5, score = $6,
            stage = $7, next_stage = $8, next_at = $9, attempts = $10, started_at = $11, updated_at = $12,
            cancel_reason = $13
        WHERE phone = $14 AND stage = $15
    `, next.Name, next.BatchID, next.Template, next.Offer, next.VariantID, next.Score, string(next.Stage),
		string(next.NextStage), nullTime(next.NextAt), next.Attempts, next.StartedAt, next.UpdatedAt,
		next.CancelReason, next.Phone, string(from))
	if err != nil {
		return false, fmt.Errorf("transition sequence: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	if _, found, err := db.GetSequence(ctx, next.Phone); err != nil {
		return false, err
	} else if !found {
		return false, fmt.Errorf("sequence %s: %w", next.Phone, domain.ErrNotFound)
	}
	return false, nil
}

func (db *DB) CancelSequence(ctx context.Context, phone, reason string, at time.Time) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
        UPDATE sequences SET stage = 'CANCELLED', next_stage = '', next_at = NULL, cancel_reason = $1, updated_at = $2
        WHERE phone = $3 AND stage NOT IN ('DONE', 'CANCELLED')
    `, reason, at, phone)
	if err != nil {
		return false, fmt.Errorf("cancel sequence: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *DB) DueSequences(ctx context.Context, now time.Time, limit int) ([]domain.FollowupSequence, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT `+sequenceColumns+` FROM sequences
        WHERE stage NOT IN ('DONE', 'CANCELLED') AND next_stage <> '' AND next_at <= $1
        ORDER BY next_at, phone
        LIMIT $2
    `, now, lim)
	if err != nil {
		return nil, fmt.Errorf("due sequences: %w", err)
	}
	return pgx.CollectRows(rows, scanSequence)
}

func (db *DB) ListSequences(ctx context.Context, stage domain.Stage) ([]domain.FollowupSequence, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+sequenceColumns+` FROM sequences
        WHERE $1 = '' OR stage = $1 ORDER BY phone`, string(stage))
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	return pgx.CollectRows(rows, scanSequence)
}
