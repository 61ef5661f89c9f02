// Package session persists per-visitor dashboard view state (sidebar
// sections, active tab, sort key) between page loads.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * 24 * time.Hour

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session not found")

// State is the view state remembered for one visitor.
type State struct {
	Sections  sidebar.SectionsState `json:"sections"`
	Tab       string                `json:"tab,omitempty"`
	Sort      string                `json:"sort,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Store loads and saves session state.
type Store interface {
	Get(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, st State) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type memEntry struct {
	state   State
	expires time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]memEntry
}

// NewMemoryStore returns an empty store. ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, data: make(map[string]memEntry)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[id]
	if !ok {
		return State{}, ErrNotFound
	}
	if !m.now().Before(e.expires) {
		delete(m.data, id)
		return State{}, ErrNotFound
	}
	return e.state, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	st.UpdatedAt = now
	m.data[id] = memEntry{state: st, expires: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// Count drops expired sessions and returns how many remain.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.data {
		if !now.Before(e.expires) {
			delete(m.data, id)
		}
	}
	return len(m.data), nil
}

func (m *MemoryStore) Close() error { return nil }
