package sqlite

import (
	"context"
	"fmt"
	"time"

	"reactivation/internal/domain"
)

const outreachColumns = `id, phone, name, at, score, template, offer, channel, stage, variant_id, batch_id, outcome, error`

func scanOutreach(row scanner) (domain.OutreachRecord, error) {
	var r domain.OutreachRecord
	var at int64
	var stage, outcome string
	if err := row.Scan(&r.ID, &r.Phone, &r.Name, &at, &r.Score, &r.Template, &r.Offer, &r.Channel,
		&stage, &r.VariantID, &r.BatchID, &outcome, &r.Error); err != nil {
		return domain.OutreachRecord{}, err
	}
	r.At = fromMillis(at)
	r.Stage = domain.Stage(stage)
	r.Outcome = domain.Outcome(outcome)
	return r, nil
}

func (s *Store) AppendOutreach(ctx context.Context, r domain.OutreachRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO outreach (`+outreachColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Phone, r.Name, toMillis(r.At), r.Score, r.Template, r.Offer, r.Channel,
		string(r.Stage), r.VariantID, r.BatchID, string(r.Outcome), r.Error)
	if err != nil {
		return fmt.Errorf("append outreach: %w", err)
	}
	return nil
}

func (s *Store) OutreachByPhone(ctx context.Context, phone string) ([]domain.OutreachRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+outreachColumns+` FROM outreach
		WHERE phone = ? ORDER BY at, rowid`, phone)
	if err != nil {
		return nil, fmt.Errorf("outreach by phone: %w", err)
	}
	return collect(rows, scanOutreach)
}

func (s *Store) OutreachBetween(ctx context.Context, from, to time.Time) ([]domain.OutreachRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+outreachColumns+` FROM outreach
		WHERE at > ? AND at <= ? ORDER BY at, rowid`, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("outreach between: %w", err)
	}
	return collect(rows, scanOutreach)
}

func (s *Store) UpdateOutreachOutcome(ctx context.Context, id string, outcome domain.Outcome) error {
	res, err := s.db.ExecContext(ctx, `UPDATE outreach SET outcome = ? WHERE id = ?`, string(outcome), id)
	if err != nil {
		return fmt.Errorf("update outreach outcome: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("outreach %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Blacklist

func (s *Store) UpsertBlacklist(ctx context.Context, e domain.BlacklistEntry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO blacklist (phone, reason, at) VALUES (?, ?, ?)
		ON CONFLICT (phone) DO UPDATE SET reason = excluded.reason, at = excluded.at`,
		e.Phone, e.Reason, toMillis(e.At))
	if err != nil {
		return fmt.Errorf("upsert blacklist: %w", err)
	}
	return nil
}

func (s *Store) RemoveBlacklist(ctx context.Context, phone string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blacklist WHERE phone = ?`, phone)
	if err != nil {
		return false, fmt.Errorf("remove blacklist: %w", err)
	}
	return affected(res)
}

func scanBlacklist(row scanner) (domain.BlacklistEntry, error) {
	var e domain.BlacklistEntry
	var at int64
	if err := row.Scan(&e.Phone, &e.Reason, &at); err != nil {
		return domain.BlacklistEntry{}, err
	}
	e.At = fromMillis(at)
	return e, nil
}

func (s *Store) GetBlacklist(ctx context.Context, phone string) (domain.BlacklistEntry, bool, error) {
	e, err := scanBlacklist(s.db.QueryRowContext(ctx, `SELECT phone, reason, at FROM blacklist WHERE phone = ?`, phone))
	if notFound(err) {
		return domain.BlacklistEntry{}, false, nil
	}
	if err != nil {
		return domain.BlacklistEntry{}, false, fmt.Errorf("get blacklist: %w", err)
	}
	return e, true, nil
}

func (s *Store) ListBlacklist(ctx context.Context) ([]domain.BlacklistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT phone, reason, at FROM blacklist ORDER BY phone`)
	if err != nil {
		return nil, fmt.Errorf("list blacklist: %w", err)
	}
	return collect(rows, scanBlacklist)
}

// Replies

func (s *Store) AppendReply(ctx context.Context, r domain.InboundReply) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO replies (id, phone, display_name, text, at, intent)
		VALUES (?, ?, ?, ?, ?, ?)`, r.ID, r.Phone, r.DisplayName, r.Text, toMillis(r.At), string(r.Intent))
	if err != nil {
		return fmt.Errorf("append reply: %w", err)
	}
	return nil
}

func (s *Store) RepliesBetween(ctx context.Context, from, to time.Time) ([]domain.InboundReply, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, phone, display_name, text, at, intent FROM replies
		WHERE at > ? AND at <= ? ORDER BY at, rowid`, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("replies between: %w", err)
	}
	return collect(rows, func(row scanner) (domain.InboundReply, error) {
		var r domain.InboundReply
		var at int64
		var intent string
		if err := row.Scan(&r.ID, &r.Phone, &r.DisplayName, &r.Text, &at, &intent); err != nil {
			return domain.InboundReply{}, err
		}
		r.At = fromMillis(at)
		r.Intent = domain.Intent(intent)
		return r, nil
	})
}

// Conversions

func (s *Store) AppendConversion(ctx context.Context, c domain.Conversion) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO conversions
		(id, phone, name, plan, value, at, days_to_convert, source, score, template, offer, variant_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Phone, c.Name, c.Plan, c.Value.String(), toMillis(c.At), c.DaysToConvert, c.Source,
		c.Score, c.Template, c.Offer, c.VariantID)
	if err != nil {
		return fmt.Errorf("append conversion: %w", err)
	}
	return nil
}

func (s *Store) ConversionsBetween(ctx context.Context, from, to time.Time) ([]domain.Conversion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, phone, name, plan, value, at, days_to_convert, source,
		score, template, offer, variant_id FROM conversions
		WHERE at > ? AND at <= ? ORDER BY at, rowid`, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("conversions between: %w", err)
	}
	return collect(rows, func(row scanner) (domain.Conversion, error) {
		var c domain.Conversion
		var value string
		var at int64
		if err := row.Scan(&c.ID, &c.Phone, &c.Name, &c.Plan, &value, &at, &c.DaysToConvert, &c.Source,
			&c.Score, &c.Template, &c.Offer, &c.VariantID); err != nil {
			return domain.Conversion{}, err
		}
		v, err := parseDecimal(value)
		if err != nil {
			return domain.Conversion{}, fmt.Errorf("conversion %s value: %w", c.ID, err)
		}
		c.Value = v
		c.At = fromMillis(at)
		return c, nil
	})
}

// Leads

const leadColumns = `phone, name, first_reply, replied_at, status, notes, updated_at`

func scanLead(row scanner) (domain.HotLead, error) {
	var l domain.HotLead
	var repliedAt, updatedAt int64
	var status string
	if err := row.Scan(&l.Phone, &l.Name, &l.FirstReply, &repliedAt, &status, &l.Notes, &updatedAt); err != nil {
		return domain.HotLead{}, err
	}
	l.RepliedAt = fromMillis(repliedAt)
	l.UpdatedAt = fromMillis(updatedAt)
	l.Status = domain.LeadStatus(status)
	return l, nil
}

func (s *Store) UpsertLead(ctx context.Context, l domain.HotLead) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO leads (`+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (phone) DO UPDATE SET name = excluded.name, first_reply = excluded.first_reply,
		replied_at = excluded.replied_at, status = excluded.status, notes = excluded.notes,
		updated_at = excluded.updated_at`,
		l.Phone, l.Name, l.FirstReply, toMillis(l.RepliedAt), string(l.Status), l.Notes, toMillis(l.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

func (s *Store) GetLead(ctx context.Context, phone string) (domain.HotLead, bool, error) {
	l, err := scanLead(s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE phone = ?`, phone))
	if notFound(err) {
		return domain.HotLead{}, false, nil
	}
	if err != nil {
		return domain.HotLead{}, false, fmt.Errorf("get lead: %w", err)
	}
	return l, true, nil
}

func (s *Store) ListLeads(ctx context.Context, status domain.LeadStatus) ([]domain.HotLead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads
		WHERE ? = '' OR status = ? ORDER BY replied_at, phone`, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return collect(rows, scanLead)
}

func (s *Store) LeadsRepliedBetween(ctx context.Context, from, to time.Time) ([]domain.HotLead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads
		WHERE replied_at > ? AND replied_at <= ? ORDER BY replied_at, phone`, toMillis(from), toMillis(to))
	if err != nil {
		return nil, fmt.Errorf("leads replied between: %w", err)
	}
	return collect(rows, scanLead)
}
