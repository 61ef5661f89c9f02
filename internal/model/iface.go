package model

import "context"

// RecordSource produces the current list of application records.
// Implementations return ErrNotReady (or any error) when no data is
// available yet; callers decide whether to retry.
type RecordSource interface {
	FetchApplications(ctx context.Context) ([]ApplicationRecord, error)
}

// RecordReader provides read-only access to stored application records.
type RecordReader interface {
	ListApplications() ([]ApplicationRecord, error)
}

// RecordWriter replaces the stored application list wholesale.
type RecordWriter interface {
	ReplaceApplications(records []ApplicationRecord) error
}

// DraftStore persists form drafts as JSON strings under per-form keys.
type DraftStore interface {
	SaveDraft(key string, value string) error
	// LoadDraft returns ok=false when no draft exists for key.
	LoadDraft(key string) (value string, ok bool, err error)
	ClearDraft(key string) error
}

// ReadAPI is the unified read/draft contract for read surfaces (HTTP and socket RPC).
type ReadAPI interface {
	RecordReader
	DraftStore
}
