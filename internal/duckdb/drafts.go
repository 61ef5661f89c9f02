package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveDraft stores value under key, replacing any previous draft.
func (s *Store) SaveDraft(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO form_drafts (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("duckdb: save draft %s: %w", key, err)
	}
	return nil
}

// LoadDraft returns the draft stored under key; ok is false when none exists.
func (s *Store) LoadDraft(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM form_drafts WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("duckdb: load draft %s: %w", key, err)
	}
	return value, true, nil
}

// ClearDraft deletes the draft under key. Missing drafts are not an error.
func (s *Store) ClearDraft(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM form_drafts WHERE key = ?", key); err != nil {
		return fmt.Errorf("duckdb: clear draft %s: %w", key, err)
	}
	return nil
}

// DeleteDraftsBefore removes drafts last saved before cutoff and returns how
// many were deleted.
func (s *Store) DeleteDraftsBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	res, err := s.db.ExecContext(ctx, "DELETE FROM form_drafts WHERE updated_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("duckdb: delete drafts before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return res.RowsAffected()
}
