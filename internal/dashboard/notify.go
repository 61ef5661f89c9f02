package dashboard

import "time"

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown above the dashboard until it
// expires.
type Notification struct {
	ID        int
	Message   string
	Level     Level
	ExpiresAt time.Time
}

// Expired reports whether n is no longer visible at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// notifications keeps the visible messages of one controller.
type notifications struct {
	ttl    time.Duration
	nextID int
	items  []Notification
}

func (ns *notifications) push(msg string, level Level, now time.Time) Notification {
	ns.nextID++
	n := Notification{ID: ns.nextID, Message: msg, Level: level, ExpiresAt: now.Add(ns.ttl)}
	ns.items = append(ns.items, n)
	return n
}

// active drops expired entries and returns the rest.
func (ns *notifications) active(now time.Time) []Notification {
	kept := ns.items[:0]
	for _, n := range ns.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	ns.items = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

func (ns *notifications) dismiss(id int) bool {
	for i, n := range ns.items {
		if n.ID == id {
			ns.items = append(ns.items[:i], ns.items[i+1:]...)
			return true
		}
	}
	return false
}
