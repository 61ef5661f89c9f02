package source

import (
	"context"
	"os"
	"testing"
)

func TestNewPostgresValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewPostgres(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewPostgres(context.Background(), "postgres://localhost/x", "apps; DROP TABLE x"); err == nil {
		t.Fatal("expected error for unsafe table name")
	}
}

// TestPostgresFetch runs against a live database when
// APPLYTRACK_TEST_POSTGRES_URL is set.
func TestPostgresFetch(t *testing.T) {
	url := os.Getenv("APPLYTRACK_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("APPLYTRACK_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	src, err := NewPostgres(ctx, url, "applytrack_source_test")
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	t.Cleanup(func() { src.Close() })

	_, err = src.pool.Exec(ctx, `CREATE TABLE applytrack_source_test (
		id text, company text, job_title text, status text, location text,
		match_score numeric, applied_at timestamptz, updated_at timestamptz, folder_name text)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { src.pool.Exec(context.Background(), "DROP TABLE applytrack_source_test") })
	_, err = src.pool.Exec(ctx, `INSERT INTO applytrack_source_test (id, company, status, match_score)
		VALUES ('1', 'Acme', 'Applied', 91), ('2', 'Globex', NULL, NULL)`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := src.FetchApplications(ctx)
	if err != nil {
		t.Fatalf("FetchApplications: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
}
