// Package mysql reads the lapsed-member population from the gym's MySQL
// database.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

var _ ports.PopulationSource = (*Source)(nil)

var tableName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Source reads one row per lapsed member. Columns are read as text so both
// DATE columns and spreadsheet-imported strings parse the same way.
type Source struct {
	db    *sql.DB
	query string
}

// Open accepts a mysql:// or mariadb:// URL or a native driver DSN.
func Open(dsn, table string) (*Source, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid population table %q", table)
	}
	native, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", native)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	return New(db, table), nil
}

// New wraps an open handle.
func New(db *sql.DB, table string) *Source {
	return &Source{db: db, query: fmt.Sprintf(`
		SELECT nome, telefone, plano, data_inicio, data_saida, data_ultima_atividade,
		       motivo_saida, idade, data_nascimento, email, observacoes
		FROM %s`, table)}
}

func (s *Source) Close() error { return s.db.Close() }

func (s *Source) FetchInactive(ctx context.Context) ([]domain.CustomerRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query population: %w", err)
	}
	defer rows.Close()

	var out []domain.CustomerRecord
	for rows.Next() {
		var name, phone, plan, start, end, last, reason, age, birth, email, notes sql.NullString
		if err := rows.Scan(&name, &phone, &plan, &start, &end, &last, &reason, &age, &birth, &email, &notes); err != nil {
			return nil, fmt.Errorf("scan population row: %w", err)
		}
		c := domain.CustomerRecord{
			Name:        strings.TrimSpace(name.String),
			Phone:       phone.String,
			Plan:        strings.TrimSpace(plan.String),
			StartDate:   domain.ParseDate(start.String),
			EndDate:     domain.ParseDate(end.String),
			ChurnReason: strings.TrimSpace(reason.String),
			BirthDate:   domain.ParseDate(birth.String),
			Email:       strings.TrimSpace(email.String),
			Notes:       strings.TrimSpace(notes.String),
		}
		c.LastActivity = domain.ParseDate(last.String)
		if c.LastActivity.IsZero() {
			c.LastActivity = c.EndDate
		}
		if n, err := strconv.Atoi(strings.TrimSpace(age.String)); err == nil && n > 0 {
			c.Age = n
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read population: %w", err)
	}
	return out, nil
}

// toMySQLDSN converts URL-style DSNs to the driver's native form.
func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	cfg := mysql.NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if cfg.User == "" || cfg.Addr == "" || cfg.DBName == "" {
		return "", fmt.Errorf("incomplete mysql dsn: user, host and database are required")
	}
	cfg.InterpolateParams = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
