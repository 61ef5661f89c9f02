package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// stubAPI is an in-memory model.ReadAPI.
type stubAPI struct {
	mu      sync.Mutex
	records []model.ApplicationRecord
	err     error
	drafts  map[string]string
}

func newStubAPI(records ...model.ApplicationRecord) *stubAPI {
	return &stubAPI{records: records, drafts: map[string]string{}}
}

func (s *stubAPI) ListApplications() ([]model.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]model.ApplicationRecord(nil), s.records...), nil
}

func (s *stubAPI) SaveDraft(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = value
	return nil
}

func (s *stubAPI) LoadDraft(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.drafts[key]
	return v, ok, nil
}

func (s *stubAPI) ClearDraft(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

func score(v float64) *float64 { return &v }

func sampleRecords() []model.ApplicationRecord {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []model.ApplicationRecord{
		{ID: "1", Company: "Acme", JobTitle: "SRE", Status: "Applied", MatchScore: score(70), AppliedAt: day, UpdatedAt: day.Add(24 * time.Hour)},
		{ID: "2", Company: "Globex", JobTitle: "Backend Engineer", Status: "Interview scheduled", AppliedAt: day, UpdatedAt: day.Add(72 * time.Hour)},
		{ID: "3", Company: "Initech", JobTitle: "Platform Engineer", Status: "Rejected", MatchScore: score(40), AppliedAt: day, UpdatedAt: day.Add(48 * time.Hour)},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
