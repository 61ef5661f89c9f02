// Package ingest pulls application records from a source into the store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/model"
)

// Load results reported to the Observer.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

// Poller fetches records with bounded retries. dashboard.Loader satisfies it.
type Poller interface {
	Poll(ctx context.Context) ([]model.ApplicationRecord, error)
}

// Observer receives sync outcomes. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveLoad(result string)
	SetApplications(counts map[string]int)
}

// Status describes the most recent sync.
type Status struct {
	LastSync time.Time `json:"last_sync,omitempty"`
	Count    int       `json:"count"`
	Result   string    `json:"result,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Syncer replaces the stored application list with the source's records.
// Runs are serialized.
type Syncer struct {
	poller   Poller
	sink     model.RecordWriter
	observer Observer
	now      func() time.Time

	runMu  sync.Mutex
	mu     sync.RWMutex
	status Status
}

// NewSyncer builds a syncer. observer may be nil.
func NewSyncer(poller Poller, sink model.RecordWriter, observer Observer) *Syncer {
	return &Syncer{poller: poller, sink: sink, observer: observer, now: time.Now}
}

// Sync polls the source and stores the result. When the source stays
// unavailable the stored list is left untouched and the error wraps
// dashboard.ErrDataUnavailable.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	records, err := s.poller.Poll(ctx)
	if err != nil {
		result := ResultError
		if errors.Is(err, dashboard.ErrDataUnavailable) {
			result = ResultUnavailable
		}
		s.finish(result, 0, err)
		return 0, fmt.Errorf("ingest: poll: %w", err)
	}

	if err := s.sink.ReplaceApplications(records); err != nil {
		s.finish(ResultError, 0, err)
		return 0, fmt.Errorf("ingest: store: %w", err)
	}

	s.finish(ResultOK, len(records), nil)
	if s.observer != nil {
		s.observer.SetApplications(categoryCounts(records))
	}
	log.Printf("ingest: stored %d applications", len(records))
	return len(records), nil
}

func (s *Syncer) finish(result string, count int, err error) {
	st := Status{LastSync: s.now(), Count: count, Result: result}
	if err != nil {
		st.Error = err.Error()
		log.Printf("ingest: sync %s: %v", result, err)
	}
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	if s.observer != nil {
		s.observer.ObserveLoad(result)
	}
}

// Synced reports whether a sync has completed, successfully or not.
func (s *Syncer) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.status.LastSync.IsZero()
}

// Status returns the outcome of the last sync.
func (s *Syncer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func categoryCounts(records []model.ApplicationRecord) map[string]int {
	counts := make(map[string]int, len(dashboard.Categories))
	for _, c := range dashboard.Categories {
		counts[string(c)] = 0
	}
	for _, r := range records {
		counts[string(dashboard.Categorize(r.Status))]++
	}
	return counts
}
