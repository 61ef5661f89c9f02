package duckdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// ReplaceApplications swaps the stored application list for records,
// keeping their order.
func (s *Store) ReplaceApplications(records []model.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("duckdb: begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applications"); err != nil {
		return fmt.Errorf("duckdb: clear applications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO applications
			(position, id, company, job_title, status, location, match_score, applied_at, updated_at, folder_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("duckdb: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			i, r.ID, r.Company, r.JobTitle, r.Status, r.Location,
			nullScore(r.MatchScore), nullTime(r.AppliedAt), nullTime(r.UpdatedAt), r.FolderName,
		)
		if err != nil {
			return fmt.Errorf("duckdb: insert application %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("duckdb: commit replace: %w", err)
	}
	return nil
}

// ListApplications returns the stored records in load order.
func (s *Store) ListApplications() ([]model.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, job_title, status, location, match_score, applied_at, updated_at, folder_name
		FROM applications
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("duckdb: list applications: %w", err)
	}
	defer rows.Close()

	var out []model.ApplicationRecord
	for rows.Next() {
		var (
			r       model.ApplicationRecord
			score   sql.NullFloat64
			applied sql.NullTime
			updated sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.Company, &r.JobTitle, &r.Status, &r.Location,
			&score, &applied, &updated, &r.FolderName); err != nil {
			return nil, fmt.Errorf("duckdb: scan application: %w", err)
		}
		if score.Valid {
			v := score.Float64
			r.MatchScore = &v
		}
		if applied.Valid {
			r.AppliedAt = applied.Time.UTC()
		}
		if updated.Valid {
			r.UpdatedAt = updated.Time.UTC()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountApplications returns the number of stored records.
func (s *Store) CountApplications() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&n); err != nil {
		return 0, fmt.Errorf("duckdb: count applications: %w", err)
	}
	return n, nil
}

func nullScore(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
