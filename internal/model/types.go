package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ApplicationRecord is one tracked job application.
// It is the canonical type for storage, transport (socket RPC), and display.
// Records are immutable once received; a load replaces the whole list.
type ApplicationRecord struct {
	ID         string
	Company    string
	JobTitle   string
	Status     string
	Location   string   // empty = not specified
	MatchScore *float64 // 0-100, nil = missing
	AppliedAt  time.Time
	UpdatedAt  time.Time // zero = never updated
	FolderName string    // detail page folder, empty = derive from company/title
}

// HasMatchScore reports whether the record carries a match score.
func (r ApplicationRecord) HasMatchScore() bool {
	return r.MatchScore != nil
}

// Score returns the match score, treating a missing score as 0.
func (r ApplicationRecord) Score() float64 {
	if r.MatchScore == nil {
		return 0
	}
	return *r.MatchScore
}

// LastActivity returns UpdatedAt, falling back to AppliedAt when the record
// has never been updated.
func (r ApplicationRecord) LastActivity() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.AppliedAt
	}
	return r.UpdatedAt
}

// wireRecord is the JSON shape produced by the tracking API and demo files.
type wireRecord struct {
	ID         json.RawMessage `json:"id"`
	Company    string          `json:"company"`
	JobTitle   string          `json:"job_title"`
	Status     string          `json:"status"`
	Location   string          `json:"location,omitempty"`
	MatchScore *float64        `json:"match_score,omitempty"`
	AppliedAt  json.RawMessage `json:"applied_at,omitempty"`
	UpdatedAt  json.RawMessage `json:"updated_at,omitempty"`
	FolderName string          `json:"folder_name,omitempty"`
}

// MarshalJSON encodes the record with the API's snake_case field names.
// Zero timestamps are omitted.
func (r ApplicationRecord) MarshalJSON() ([]byte, error) {
	out := struct {
		ID         string   `json:"id"`
		Company    string   `json:"company"`
		JobTitle   string   `json:"job_title"`
		Status     string   `json:"status"`
		Location   string   `json:"location,omitempty"`
		MatchScore *float64 `json:"match_score,omitempty"`
		AppliedAt  string   `json:"applied_at,omitempty"`
		UpdatedAt  string   `json:"updated_at,omitempty"`
		FolderName string   `json:"folder_name,omitempty"`
	}{
		ID:         r.ID,
		Company:    r.Company,
		JobTitle:   r.JobTitle,
		Status:     r.Status,
		Location:   r.Location,
		MatchScore: r.MatchScore,
		FolderName: r.FolderName,
	}
	if !r.AppliedAt.IsZero() {
		out.AppliedAt = r.AppliedAt.UTC().Format(time.RFC3339Nano)
	}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a record leniently: ids may be strings or numbers,
// and timestamps that are missing or unparseable decode to the zero time.
func (r *ApplicationRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = ApplicationRecord{
		ID:         decodeID(w.ID),
		Company:    w.Company,
		JobTitle:   w.JobTitle,
		Status:     w.Status,
		Location:   w.Location,
		MatchScore: w.MatchScore,
		AppliedAt:  decodeTimestamp(w.AppliedAt),
		UpdatedAt:  decodeTimestamp(w.UpdatedAt),
		FolderName: w.FolderName,
	}
	return nil
}

func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func decodeTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseTimestamp(s)
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats accepted by the tracking API.
// Numeric strings are epoch milliseconds. Unparseable input yields the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// EpochMillis returns t in epoch milliseconds; the zero time maps to
// math.MinInt64 so missing timestamps order before every real one.
func EpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return -1 << 63
	}
	return t.UnixMilli()
}

// DecodeApplications decodes either a bare JSON array of records or an object
// exposing an "applications" array.
func DecodeApplications(data []byte) ([]ApplicationRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode applications: empty payload")
	}
	if data[0] == '[' {
		var records []ApplicationRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode applications: %w", err)
		}
		return records, nil
	}
	var wrapped struct {
		Applications []ApplicationRecord `json:"applications"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	if wrapped.Applications == nil {
		return nil, fmt.Errorf("decode applications: missing applications field")
	}
	return wrapped.Applications, nil
}

// Draft is the persisted content of one form, keyed per form id.
type Draft struct {
	Key       string
	Values    map[string]string
	UpdatedAt time.Time
}
