package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeApplications_BareArray(t *testing.T) {
	data := []byte(`[
		{"id": 7, "company": "Acme", "job_title": "SRE", "status": "Applied",
		 "match_score": 82.5, "applied_at": "2024-03-01T10:00:00Z", "updated_at": "2024-03-05"},
		{"id": "b", "company": "Globex", "job_title": "Dev", "status": "Interview",
		 "applied_at": "not a date"}
	]`)

	records, err := DecodeApplications(data)
	if err != nil {
		t.Fatalf("DecodeApplications: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	first := records[0]
	if first.ID != "7" {
		t.Errorf("numeric id = %q, want 7", first.ID)
	}
	if first.Score() != 82.5 {
		t.Errorf("score = %v, want 82.5", first.Score())
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !first.AppliedAt.Equal(want) {
		t.Errorf("applied_at = %v, want %v", first.AppliedAt, want)
	}
	if got := first.UpdatedAt.Format("2006-01-02"); got != "2024-03-05" {
		t.Errorf("updated_at = %s, want 2024-03-05", got)
	}

	second := records[1]
	if !second.AppliedAt.IsZero() {
		t.Errorf("unparseable applied_at = %v, want zero", second.AppliedAt)
	}
	if second.HasMatchScore() {
		t.Error("missing match_score should be nil")
	}
	if second.Score() != 0 {
		t.Errorf("missing score = %v, want 0", second.Score())
	}
}

func TestDecodeApplications_Wrapped(t *testing.T) {
	records, err := DecodeApplications([]byte(`{"applications": [{"id": "x", "company": "Initech"}]}`))
	if err != nil {
		t.Fatalf("DecodeApplications: %v", err)
	}
	if len(records) != 1 || records[0].Company != "Initech" {
		t.Fatalf("records = %+v", records)
	}

	if _, err := DecodeApplications([]byte(`{"jobs": []}`)); err == nil {
		t.Error("expected error for object without applications")
	}
	if _, err := DecodeApplications(nil); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestApplicationRecord_JSONRoundTripKeepsWireNames(t *testing.T) {
	score := 91.0
	rec := ApplicationRecord{
		ID:         "1",
		Company:    "Acme",
		JobTitle:   "Engineer",
		Status:     "Offer",
		MatchScore: &score,
		AppliedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		FolderName: "acme-engineer",
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, key := range []string{"id", "company", "job_title", "status", "match_score", "applied_at", "folder_name"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing wire field %q in %s", key, data)
		}
	}
	if _, ok := fields["updated_at"]; ok {
		t.Error("zero updated_at should be omitted")
	}
}

func TestLastActivityFallsBackToApplied(t *testing.T) {
	applied := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rec := ApplicationRecord{AppliedAt: applied}
	if !rec.LastActivity().Equal(applied) {
		t.Errorf("LastActivity = %v, want %v", rec.LastActivity(), applied)
	}
	if EpochMillis(time.Time{}) >= EpochMillis(applied) {
		t.Error("zero time must order before real timestamps")
	}
}

func TestParseTimestamp_EpochMillis(t *testing.T) {
	got := ParseTimestamp("1700000000000")
	if got.UnixMilli() != 1700000000000 {
		t.Errorf("epoch ms = %d", got.UnixMilli())
	}
}
