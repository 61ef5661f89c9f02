package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// fakeSource reports not-ready for the first notReady calls, then returns
// records or err.
type fakeSource struct {
	notReady int
	records  []model.ApplicationRecord
	err      error
	calls    int
}

func (f *fakeSource) FetchApplications(ctx context.Context) ([]model.ApplicationRecord, error) {
	f.calls++
	if f.calls <= f.notReady {
		return nil, model.ErrNotReady
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestPollBoundedRetry(t *testing.T) {
	t.Parallel()

	src := &fakeSource{notReady: 1 << 30}
	l := Loader{Source: src, Attempts: 4, Delay: time.Millisecond}
	_, err := l.Poll(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Poll err = %v, want ErrDataUnavailable", err)
	}
	if src.calls != 4 {
		t.Fatalf("calls = %d, want 4", src.calls)
	}
}

func TestPollEventuallyReady(t *testing.T) {
	t.Parallel()

	src := &fakeSource{notReady: 2, records: []model.ApplicationRecord{{ID: "1"}}}
	l := Loader{Source: src, Attempts: 5, Delay: time.Millisecond}
	records, err := l.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(records) != 1 || src.calls != 3 {
		t.Fatalf("records=%d calls=%d", len(records), src.calls)
	}
}

func TestPollStopsOnHardError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	src := &fakeSource{err: boom}
	l := Loader{Source: src, Attempts: 5, Delay: time.Millisecond}
	if _, err := l.Poll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Poll err = %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}
}

func TestPollHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := Loader{Source: &fakeSource{notReady: 10}, Attempts: 10, Delay: time.Hour}
	if _, err := l.Poll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll err = %v, want context.Canceled", err)
	}
}
