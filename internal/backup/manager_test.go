package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSnapshotter struct {
	dbPath string
	data   []byte
	err    error
}

func (f *fakeSnapshotter) DBPath() string { return f.dbPath }

func (f *fakeSnapshotter) SnapshotTo(dstPath string) error {
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, f.data, 0644)
}

// steppingClock returns a new second on every call so snapshot names differ.
func steppingClock() func() time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNewManager_Disabled(t *testing.T) {
	t.Parallel()

	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/applytrack.duckdb"}, Config{})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil manager when disabled")
	}
	m.Stop()
}

func TestNewManager_EnabledRequiresDBPath(t *testing.T) {
	t.Parallel()

	_, err := NewManager(&fakeSnapshotter{}, Config{Enabled: true, Dir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestNewManager_EnabledRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/applytrack.duckdb"}, Config{Enabled: true})
	if err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestNewManager_StartupSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/applytrack.duckdb", data: []byte("x")}, Config{
		Enabled:  true,
		Dir:      dir,
		Interval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.Stop()
	m.Stop()

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(files))
	}
}

func TestRunOnce_CreatesAndPrunes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := &Manager{
		store: &fakeSnapshotter{dbPath: "/tmp/applytrack.duckdb", data: []byte("snapshot")},
		cfg:   Config{Enabled: true, Dir: dir, KeepLast: 2},
		now:   steppingClock(),
	}

	var last string
	for i := 0; i < 3; i++ {
		path, err := m.RunOnce()
		if err != nil {
			t.Fatalf("RunOnce #%d: %v", i+1, err)
		}
		last = path
	}

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(files))
	}
	if files[0] != last {
		t.Fatalf("newest = %s, want %s", files[0], last)
	}
	if filepath.Base(last) != "applytrack-20250301-120003.duckdb" {
		t.Fatalf("name = %s", filepath.Base(last))
	}
}

func TestRunOnce_SnapshotError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	m := &Manager{
		store: &fakeSnapshotter{dbPath: "/tmp/applytrack.duckdb", err: boom},
		cfg:   Config{Dir: t.TempDir(), KeepLast: 1},
		now:   time.Now,
	}
	if _, err := m.RunOnce(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
