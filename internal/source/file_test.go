package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestFileJSON(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "demo.json", `[{"id":"a","company":"Acme"},{"id":"b","company":"Globex"}]`)
	records, err := NewFile(p).FetchApplications(context.Background())
	if err != nil {
		t.Fatalf("FetchApplications: %v", err)
	}
	if len(records) != 2 || records[1].Company != "Globex" {
		t.Fatalf("records = %+v", records)
	}
}

func TestFileYAML(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "demo.yaml", `
applications:
  - id: 1
    company: Initech
    job_title: Analyst
    status: Phone Screen
    match_score: 72.5
    updated_at: "2025-03-04T10:00:00Z"
  - id: 2
    company: Hooli
`)
	records, err := NewFile(p).FetchApplications(context.Background())
	if err != nil {
		t.Fatalf("FetchApplications: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	r := records[0]
	if r.ID != "1" || r.JobTitle != "Analyst" || r.Score() != 72.5 {
		t.Fatalf("record = %+v", r)
	}
	want := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	if !r.UpdatedAt.Equal(want) {
		t.Fatalf("updated_at = %v, want %v", r.UpdatedAt, want)
	}
	if records[1].HasMatchScore() {
		t.Fatal("missing match score decoded as present")
	}
}

func TestFileMissingIsNotReady(t *testing.T) {
	t.Parallel()

	_, err := NewFile(filepath.Join(t.TempDir(), "absent.json")).FetchApplications(context.Background())
	if !errors.Is(err, model.ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{Kind: "ftp"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	src, err := Open(context.Background(), Config{Kind: KindFile, Path: "demo.json"})
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if _, ok := src.(*File); !ok {
		t.Fatalf("Open returned %T", src)
	}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "demo.json", `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var calls atomic.Int32
	changed := make(chan struct{}, 1)
	err := Watch(ctx, p, 20*time.Millisecond, func() {
		calls.Add(1)
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	writeFile(t, dir, "other.json", `[]`)
	writeFile(t, dir, "demo.json", `[{"id":"1"}]`)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
