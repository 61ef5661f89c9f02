package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

var (
	// ErrDataUnavailable means the record source never produced data within
	// the polling bound. The dashboard shows its empty state.
	ErrDataUnavailable = errors.New("dashboard: application data unavailable")
	// ErrRenderFailure wraps errors raised while projecting records to cards.
	ErrRenderFailure = errors.New("dashboard: render failure")
)

// Loader polls a record source until it has data, up to Attempts tries with
// Delay between them.
type Loader struct {
	Source   model.RecordSource
	Attempts int
	Delay    time.Duration
}

// NewLoader returns a loader using the default polling bound.
func NewLoader(src model.RecordSource) Loader {
	return Loader{Source: src, Attempts: model.DefaultLoadAttempts, Delay: model.DefaultLoadDelay}
}

// Try performs one fetch. A source that is not ready yet returns an error
// matching model.ErrNotReady.
func (l Loader) Try(ctx context.Context) ([]model.ApplicationRecord, error) {
	if l.Source == nil {
		return nil, fmt.Errorf("dashboard: nil record source: %w", model.ErrNotReady)
	}
	return l.Source.FetchApplications(ctx)
}

// Retry reports whether a failed attempt numbered attempt (1-based) should be
// followed by another.
func (l Loader) Retry(attempt int, err error) bool {
	return errors.Is(err, model.ErrNotReady) && attempt < l.attempts()
}

func (l Loader) attempts() int {
	if l.Attempts <= 0 {
		return 1
	}
	return l.Attempts
}

// Poll fetches until the source is ready. When every attempt reports not
// ready it returns ErrDataUnavailable. Other errors end polling at once.
func (l Loader) Poll(ctx context.Context) ([]model.ApplicationRecord, error) {
	for attempt := 1; ; attempt++ {
		records, err := l.Try(ctx)
		if err == nil {
			return records, nil
		}
		if !errors.Is(err, model.ErrNotReady) {
			return nil, err
		}
		if !l.Retry(attempt, err) {
			return nil, Unavailable(attempt)
		}

		timer := time.NewTimer(l.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// Unavailable is the error reported once attempts fetches found no data.
func Unavailable(attempts int) error {
	return fmt.Errorf("%w after %d attempts", ErrDataUnavailable, attempts)
}
