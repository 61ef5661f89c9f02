package source

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinytelemetry/applytrack/internal/model"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Postgres reads records from a table shared with other tools. Columns
// follow the API's field names; id is read as text.
type Postgres struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgres connects to the database at url. table defaults to
// "applications" and may be schema-qualified.
func NewPostgres(ctx context.Context, url, table string) (*Postgres, error) {
	if url == "" {
		return nil, fmt.Errorf("source: postgres source needs a url")
	}
	if table == "" {
		table = "applications"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("source: invalid table name %q", table)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("source: parse postgres url: %w", err)
	}
	cfg.MaxConns = 2
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("source: connect postgres: %w", err)
	}
	return &Postgres{pool: pool, query: selectQuery(table)}, nil
}

func selectQuery(table string) string {
	return `SELECT id::text, coalesce(company, ''), coalesce(job_title, ''), coalesce(status, ''),
		coalesce(location, ''), match_score::float8, applied_at, updated_at, coalesce(folder_name, '')
		FROM ` + table + ` ORDER BY updated_at DESC NULLS LAST, id`
}

// FetchApplications reads every row of the table. A database that cannot
// be reached counts as not ready.
func (p *Postgres) FetchApplications(ctx context.Context) ([]model.ApplicationRecord, error) {
	if err := p.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("source: postgres ping: %v: %w", err, model.ErrNotReady)
	}
	rows, err := p.pool.Query(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("source: query applications: %w", err)
	}
	return pgx.CollectRows(rows, scanRecord)
}

func scanRecord(row pgx.CollectableRow) (model.ApplicationRecord, error) {
	var (
		r       model.ApplicationRecord
		score   *float64
		applied *time.Time
		updated *time.Time
	)
	if err := row.Scan(&r.ID, &r.Company, &r.JobTitle, &r.Status, &r.Location,
		&score, &applied, &updated, &r.FolderName); err != nil {
		return model.ApplicationRecord{}, fmt.Errorf("source: scan application: %w", err)
	}
	r.MatchScore = score
	if applied != nil {
		r.AppliedAt = applied.UTC()
	}
	if updated != nil {
		r.UpdatedAt = updated.UTC()
	}
	return r, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
