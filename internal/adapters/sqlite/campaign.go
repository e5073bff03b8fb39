package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reactivation/internal/domain"
)

// Batches

const batchColumns = `id, created_at, updated_at, status, items, stats, summary`

func (s *Store) SaveBatch(ctx context.Context, b domain.Batch) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("encode batch items: %w", err)
	}
	stats, err := json.Marshal(b.Stats)
	if err != nil {
		return fmt.Errorf("encode batch stats: %w", err)
	}
	summary, err := json.Marshal(b.Summary)
	if err != nil {
		return fmt.Errorf("encode batch summary: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO batches (`+batchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at, status = excluded.status,
		items = excluded.items, stats = excluded.stats, summary = excluded.summary`,
		b.ID, toMillis(b.CreatedAt), toMillis(b.UpdatedAt), string(b.Status), string(items), string(stats), string(summary))
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

func scanBatch(row scanner) (domain.Batch, error) {
	var b domain.Batch
	var createdAt, updatedAt int64
	var status, items, stats, summary string
	if err := row.Scan(&b.ID, &createdAt, &updatedAt, &status, &items, &stats, &summary); err != nil {
		return domain.Batch{}, err
	}
	b.CreatedAt, b.UpdatedAt = fromMillis(createdAt), fromMillis(updatedAt)
	b.Status = domain.BatchStatus(status)
	if err := json.Unmarshal([]byte(items), &b.Items); err != nil {
		return domain.Batch{}, fmt.Errorf("decode batch items: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &b.Stats); err != nil {
		return domain.Batch{}, fmt.Errorf("decode batch stats: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &b.Summary); err != nil {
		return domain.Batch{}, fmt.Errorf("decode batch summary: %w", err)
	}
	return b, nil
}

func (s *Store) GetBatch(ctx context.Context, id string) (domain.Batch, error) {
	b, err := scanBatch(s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id))
	if notFound(err) {
		return domain.Batch{}, fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Batch{}, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (s *Store) LatestBatch(ctx context.Context) (domain.Batch, error) {
	b, err := scanBatch(s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY seq DESC LIMIT 1`))
	if notFound(err) {
		return domain.Batch{}, fmt.Errorf("latest batch: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Batch{}, fmt.Errorf("latest batch: %w", err)
	}
	return b, nil
}

func (s *Store) TransitionBatch(ctx context.Context, id string, from, to domain.BatchStatus, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE batches SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), toMillis(at), id, string(from))
	if err != nil {
		return false, fmt.Errorf("transition batch: %w", err)
	}
	ok, err := affected(res)
	if err != nil || ok {
		return ok, err
	}
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM batches WHERE id = ?`, id).Scan(&exists); notFound(err) {
		return false, fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	} else if err != nil {
		return false, fmt.Errorf("transition batch: %w", err)
	}
	return false, nil
}

// Sequences

const sequenceColumns = `phone, name, batch_id, template, offer, variant_id, score, stage, next_stage, next_at,
	attempts, started_at, updated_at, cancel_reason, plan, triggers`

func sequenceArgs(q domain.FollowupSequence) []any {
	return []any{q.Phone, q.Name, q.BatchID, q.Template, q.Offer, q.VariantID, q.Score, string(q.Stage),
		string(q.NextStage), toMillis(q.NextAt), q.Attempts, toMillis(q.StartedAt), toMillis(q.UpdatedAt), q.CancelReason,
		q.Plan, domain.JoinTriggers(q.Triggers)}
}

func scanSequence(row scanner) (domain.FollowupSequence, error) {
	var q domain.FollowupSequence
	var stage, nextStage, triggers string
	var nextAt, startedAt, updatedAt int64
	if err := row.Scan(&q.Phone, &q.Name, &q.BatchID, &q.Template, &q.Offer, &q.VariantID, &q.Score, &stage,
		&nextStage, &nextAt, &q.Attempts, &startedAt, &updatedAt, &q.CancelReason, &q.Plan, &triggers); err != nil {
		return domain.FollowupSequence{}, err
	}
	q.Triggers = domain.SplitTriggers(triggers)
	q.Stage, q.NextStage = domain.Stage(stage), domain.Stage(nextStage)
	q.NextAt, q.StartedAt, q.UpdatedAt = fromMillis(nextAt), fromMillis(startedAt), fromMillis(updatedAt)
	return q, nil
}

func (s *Store) GetSequence(ctx context.Context, phone string) (domain.FollowupSequence, bool, error) {
	q, err := scanSequence(s.db.QueryRowContext(ctx, `SELECT `+sequenceColumns+` FROM sequences WHERE phone = ?`, phone))
	if notFound(err) {
		return domain.FollowupSequence{}, false, nil
	}
	if err != nil {
		return domain.FollowupSequence{}, false, fmt.Errorf("get sequence: %w", err)
	}
	return q, true, nil
}

// StartSequence only overwrites a terminal row; a live one leaves the upsert
// with nothing to update.
func (s *Store) StartSequence(ctx context.Context, q domain.FollowupSequence) error {
	res, err := s.db.ExecContext(ctx, `INSERT INTO sequences (`+sequenceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (phone) DO UPDATE SET name = excluded.name, batch_id = excluded.batch_id,
		template = excluded.template, offer = excluded.offer, variant_id = excluded.variant_id,
		score = excluded.score, stage = excluded.stage, next_stage = excluded.next_stage,
		next_at = excluded.next_at, attempts = excluded.attempts, started_at = excluded.started_at,
		updated_at = excluded.updated_at, cancel_reason = excluded.cancel_reason, plan = excluded.plan,
		triggers = excluded.triggers
		WHERE sequences.stage IN ('DONE', 'CANCELLED')`, sequenceArgs(q)...)
	if err != nil {
		return fmt.Errorf("start sequence: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sequence %s: %w", q.Phone, domain.ErrSequenceActive)
	}
	return nil
}

func (s *Store) TransitionSequence(ctx context.Context, from domain.Stage, next domain.FollowupSequence) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE sequences SET name = ?, batch_id = ?, template = ?, offer = ?,
		variant_id = ?, score = ?, stage = ?, next_stage = ?, next_at = ?, attempts = ?, started_at = ?,
		updated_at = ?, cancel_reason = ?
		WHERE phone = ? AND stage = ?`,
		next.Name, next.BatchID, next.Template, next.Offer, next.VariantID, next.Score, string(next.Stage),
		string(next.NextStage), toMillis(next.NextAt), next.Attempts, toMillis(next.StartedAt),
		toMillis(next.UpdatedAt), next.CancelReason, next.Phone, string(from))
	if err != nil {
		return false, fmt.Errorf("transition sequence: %w", err)
	}
	ok, err := affected(res)
	if err != nil || ok {
		return ok, err
	}
	if _, found, err := s.GetSequence(ctx, next.Phone); err != nil {
		return false, err
	} else if !found {
		return false, fmt.Errorf("sequence %s: %w", next.Phone, domain.ErrNotFound)
	}
	return false, nil
}

func (s *Store) CancelSequence(ctx context.Context, phone, reason string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE sequences SET stage = 'CANCELLED', next_stage = '', next_at = 0,
		cancel_reason = ?, updated_at = ? WHERE phone = ? AND stage NOT IN ('DONE', 'CANCELLED')`,
		reason, toMillis(at), phone)
	if err != nil {
		return false, fmt.Errorf("cancel sequence: %w", err)
	}
	return affected(res)
}

func (s *Store) DueSequences(ctx context.Context, now time.Time, limit int) ([]domain.FollowupSequence, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+sequenceColumns+` FROM sequences
		WHERE stage NOT IN ('DONE', 'CANCELLED') AND next_stage <> '' AND next_at <= ?
		ORDER BY next_at, phone LIMIT ?`, toMillis(now), limit)
	if err != nil {
		return nil, fmt.Errorf("due sequences: %w", err)
	}
	return collect(rows, scanSequence)
}

func (s *Store) ListSequences(ctx context.Context, stage domain.Stage) ([]domain.FollowupSequence, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sequenceColumns+` FROM sequences
		WHERE ? = '' OR stage = ? ORDER BY phone`, string(stage), string(stage))
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	return collect(rows, scanSequence)
}
