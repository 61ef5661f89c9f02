package duckdb

import "testing"

func TestDraftCleaner_StopIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	cleaner := NewDraftCleaner(store, DraftRetentionConfig{RetentionDays: 1})
	if cleaner == nil {
		t.Fatal("expected non-nil draft cleaner")
	}

	cleaner.Stop()
	cleaner.Stop()
}

func TestDraftCleaner_DisabledIsNil(t *testing.T) {
	store := newTestStore(t)
	cleaner := NewDraftCleaner(store, DraftRetentionConfig{})
	if cleaner != nil {
		t.Fatal("expected nil cleaner when retention is disabled")
	}
	cleaner.Stop()
}
