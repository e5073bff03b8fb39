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

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// OutreachRepository

const outreachColumns = `id, phone, name, at, score, template, offer, channel, stage, variant_id, batch_id, outcome, error`

func scanOutreach(row pgx.CollectableRow) (domain.OutreachRecord, error) {
	var r domain.OutreachRecord
	var stage, outcome string
	if err := row.Scan(&r.ID, &r.Phone, &r.Name, &r.At, &r.Score, &r.Template, &r.Offer, &r.Channel,
		&stage, &r.VariantID, &r.BatchID, &outcome, &r.Error); err != nil {
		return domain.OutreachRecord{}, err
	}
	r.At = r.At.UTC()
	r.Stage, r.Outcome = domain.Stage(stage), domain.Outcome(outcome)
	return r, nil
}

func (db *DB) AppendOutreach(ctx context.Context, r domain.OutreachRecord) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO outreach (`+outreachColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `, r.ID, r.Phone, r.Name, r.At, r.Score, r.Template, r.Offer, r.Channel,
		string(r.Stage), r.VariantID, r.BatchID, string(r.Outcome), r.Error)
	if err != nil {
		return fmt.Errorf("append outreach: %w", err)
	}
	return nil
}

func (db *DB) OutreachByPhone(ctx context.Context, phone string) ([]domain.OutreachRecord, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+outreachColumns+` FROM outreach WHERE phone = $1 ORDER BY at, seq`, phone)
	if err != nil {
		return nil, fmt.Errorf("outreach by phone: %w", err)
	}
	return pgx.CollectRows(rows, scanOutreach)
}

func (db *DB) OutreachBetween(ctx context.Context, from, to time.Time) ([]domain.OutreachRecord, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+outreachColumns+` FROM outreach
        WHERE at > $1 AND at <= $2 ORDER BY at, seq`, from, to)
	if err != nil {
		return nil, fmt.Errorf("outreach between: %w", err)
	}
	return pgx.CollectRows(rows, scanOutreach)
}

func (db *DB) UpdateOutreachOutcome(ctx context.Context, id string, outcome domain.Outcome) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE outreach SET outcome = $1 WHERE id = $2`, string(outcome), id)
	if err != nil {
		return fmt.Errorf("update outreach outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outreach %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// BlacklistRepository

func scanBlacklist(row pgx.CollectableRow) (domain.BlacklistEntry, error) {
	var e domain.BlacklistEntry
	if err := row.Scan(&e.Phone, &e.Reason, &e.At); err != nil {
		return domain.BlacklistEntry{}, err
	}
	e.At = e.At.UTC()
	return e, nil
}

func (db *DB) UpsertBlacklist(ctx context.Context, e domain.BlacklistEntry) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO blacklist (phone, reason, at) VALUES ($1, $2, $3)
        ON CONFLICT (phone) DO UPDATE SET reason = EXCLUDED.reason, at = EXCLUDED.at
    `, e.Phone, e.Reason, e.At)
	if err != nil {
		return fmt.Errorf("upsert blacklist: %w", err)
	}
	return nil
}

func (db *DB) RemoveBlacklist(ctx context.Context, phone string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM blacklist WHERE phone = $1`, phone)
	if err != nil {
		return false, fmt.Errorf("remove blacklist: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *DB) GetBlacklist(ctx context.Context, phone string) (domain.BlacklistEntry, bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT phone, reason, at FROM blacklist WHERE phone = $1`, phone)
	if err != nil {
		return domain.BlacklistEntry{}, false, fmt.Errorf("get blacklist: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanBlacklist)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.BlacklistEntry{}, false, nil
	}
	if err != nil {
		return domain.BlacklistEntry{}, false, fmt.Errorf("get blacklist: %w", err)
	}
	return e, true, nil
}

func (db *DB) ListBlacklist(ctx context.Context) ([]domain.BlacklistEntry, error) {
	rows, err := db.Pool.Query(ctx, `SELECT phone, reason, at FROM blacklist ORDER BY phone`)
	if err != nil {
		return nil, fmt.Errorf("list blacklist: %w", err)
	}
	return pgx.CollectRows(rows, scanBlacklist)
}

// ReplyRepository

func (db *DB) AppendReply(ctx context.Context, r domain.InboundReply) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO replies (id, phone, display_name, text, at, intent) VALUES ($1, $2, $3, $4, $5, $6)
    `, r.ID, r.Phone, r.DisplayName, r.Text, r.At, string(r.Intent))
	if err != nil {
		return fmt.Errorf("append reply: %w", err)
	}
	return nil
}

func (db *DB) RepliesBetween(ctx context.Context, from, to time.Time) ([]domain.InboundReply, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, phone, display_name, text, at, intent FROM replies
        WHERE at > $1 AND at <= $2 ORDER BY at, seq`, from, to)
	if err != nil {
		return nil, fmt.Errorf("replies between: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InboundReply, error) {
		var r domain.InboundReply
		var intent string
		if err := row.Scan(&r.ID, &r.Phone, &r.DisplayName, &r.Text, &r.At, &intent); err != nil {
			return domain.InboundReply{}, err
		}
		r.At = r.At.UTC()
		r.Intent = domain.Intent(intent)
		return r, nil
	})
}

// ConversionRepository

func (db *DB) AppendConversion(ctx context.Context, c domain.Conversion) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO conversions (id, phone, name, plan, value, at, days_to_convert, source, score, template, offer, variant_id)
        VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12)
    `, c.ID, c.Phone, c.Name, c.Plan, c.Value.String(), c.At, c.DaysToConvert, c.Source,
		c.Score, c.Template, c.Offer, c.VariantID)
	if err != nil {
		return fmt.Errorf("append conversion: %w", err)
	}
	return nil
}

func (db *DB) ConversionsBetween(ctx context.Context, from, to time.Time) ([]domain.Conversion, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, phone, name, plan, value::text, at, days_to_convert, source, score, template, offer, variant_id
        FROM conversions WHERE at > $1 AND at <= $2 ORDER BY at, seq
    `, from, to)
	if err != nil {
		return nil, fmt.Errorf("conversions between: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Conversion, error) {
		var c domain.Conversion
		var value string
		if err := row.Scan(&c.ID, &c.Phone, &c.Name, &c.Plan, &value, &c.At, &c.DaysToConvert, &c.Source,
			&c.Score, &c.Template, &c.Offer, &c.VariantID); err != nil {
			return domain.Conversion{}, err
		}
		v, err := parseDecimal(value)
		if err != nil {
			return domain.Conversion{}, fmt.Errorf("conversion %s value: %w", c.ID, err)
		}
		c.Value, c.At = v, c.At.UTC()
		return c, nil
	})
}

// LeadRepository

const leadColumns = `phone, name, first_reply, replied_at, status, notes, updated_at`

func scanLead(row pgx.CollectableRow) (domain.HotLead, error) {
	var l domain.HotLead
	var status string
	if err := row.Scan(&l.Phone, &l.Name, &l.FirstReply, &l.RepliedAt, &status, &l.Notes, &l.UpdatedAt); err != nil {
		return domain.HotLead{}, err
	}
	l.RepliedAt, l.UpdatedAt = l.RepliedAt.UTC(), l.UpdatedAt.UTC()
	l.Status = domain.LeadStatus(status)
	return l, nil
}

func (db *DB) UpsertLead(ctx context.Context, l domain.HotLead) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO leads (`+leadColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, first_reply = EXCLUDED.first_reply,
            replied_at = EXCLUDED.replied_at, status = EXCLUDED.status, notes = EXCLUDED.notes,
            updated_at = EXCLUDED.updated_at
    `, l.Phone, l.Name, l.FirstReply, l.RepliedAt, string(l.Status), l.Notes, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

func (db *DB) GetLead(ctx context.Context, phone string) (domain.HotLead, bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+leadColumns+` FROM leads WHERE phone = $1`, phone)
	if err != nil {
		return domain.HotLead{}, false, fmt.Errorf("get lead: %w", err)
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLead)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HotLead{}, false, nil
	}
	if err != nil {
		return domain.HotLead{}, false, fmt.Errorf("get lead: %w", err)
	}
	return l, true, nil
}

func (db *DB) ListLeads(ctx context.Context, status domain.LeadStatus) ([]domain.HotLead, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+leadColumns+` FROM leads
        WHERE $1 = '' OR status = $1 ORDER BY replied_at, phone`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return pgx.CollectRows(rows, scanLead)
}

func (db *DB) LeadsRepliedBetween(ctx context.Context, from, to time.Time) ([]domain.HotLead, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+leadColumns+` FROM leads
        WHERE replied_at > $1 AND replied_at <= $2 ORDER BY replied_at, phone`, from, to)
	if err != nil {
		return nil, fmt.Errorf("leads replied between: %w", err)
	}
	return pgx.CollectRows(rows, scanLead)
}
