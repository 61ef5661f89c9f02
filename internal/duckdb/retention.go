package duckdb

import (
	"log"
	"sync"
	"time"
)

// DraftRetentionConfig configures the stale-draft cleaner.
type DraftRetentionConfig struct {
	RetentionDays int
	Interval      time.Duration
}

// DraftCleaner periodically deletes drafts nobody has saved for a while.
type DraftCleaner struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDraftCleaner starts a cleaner that removes drafts older than the
// retention period. It returns nil when retention is disabled.
func NewDraftCleaner(store *Store, cfg DraftRetentionConfig) *DraftCleaner {
	if cfg.RetentionDays <= 0 {
		return nil
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}

	dc := &DraftCleaner{
		store:    store,
		maxAge:   time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval: cfg.Interval,
		done:     make(chan struct{}),
	}

	// Catch up after downtime.
	dc.cleanup()

	dc.wg.Add(1)
	go dc.loop()
	return dc
}

func (dc *DraftCleaner) loop() {
	defer dc.wg.Done()
	ticker := time.NewTicker(dc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dc.cleanup()
		case <-dc.done:
			return
		}
	}
}

func (dc *DraftCleaner) cleanup() {
	n, err := dc.store.DeleteDraftsBefore(time.Now().Add(-dc.maxAge))
	if err != nil {
		log.Printf("duckdb: draft cleanup: %v", err)
		return
	}
	if n > 0 {
		log.Printf("duckdb: removed %d stale drafts", n)
	}
}

// Stop halts the cleaner and waits for it to exit. Safe on a nil cleaner.
func (dc *DraftCleaner) Stop() {
	if dc == nil {
		return
	}
	dc.stopOnce.Do(func() {
		close(dc.done)
		dc.wg.Wait()
	})
}
