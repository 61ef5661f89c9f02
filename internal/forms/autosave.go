package forms

import (
	"log"
	"sync"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// SavedIndicatorTTL is how long the "Saved" indicator stays visible.
const SavedIndicatorTTL = 2 * time.Second

// SavedEvent reports one completed auto-save.
type SavedEvent struct {
	FormID string
	Draft  model.Draft
}

// ValueSource exposes the current values of a form.
type ValueSource interface {
	ID() string
	Values() map[string]string
}

// AutoSaver writes a form's values to drafts on a fixed interval, whether or
// not they validate.
type AutoSaver struct {
	form     ValueSource
	drafts   *Drafts
	interval time.Duration

	saved    chan SavedEvent
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewAutoSaver starts saving form every interval. A non-positive interval
// uses model.DefaultAutoSaveInterval.
func NewAutoSaver(form ValueSource, drafts *Drafts, interval time.Duration) *AutoSaver {
	if interval <= 0 {
		interval = model.DefaultAutoSaveInterval
	}
	a := &AutoSaver{
		form:     form,
		drafts:   drafts,
		interval: interval,
		saved:    make(chan SavedEvent, 1),
		done:     make(chan struct{}),
	}
	a.wg.Add(1)
	go a.loop()
	return a
}

func (a *AutoSaver) loop() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.saveOnce()
		case <-a.done:
			return
		}
	}
}

func (a *AutoSaver) saveOnce() {
	draft, err := a.drafts.Save(a.form.ID(), a.form.Values())
	if err != nil {
		log.Printf("forms: autosave %s: %v", a.form.ID(), err)
		return
	}
	ev := SavedEvent{FormID: a.form.ID(), Draft: draft}
	// Keep only the latest event when nobody is listening.
	select {
	case a.saved <- ev:
	default:
		select {
		case <-a.saved:
		default:
		}
		select {
		case a.saved <- ev:
		default:
		}
	}
}

// Saved delivers an event after each successful save. It is closed by Stop.
func (a *AutoSaver) Saved() <-chan SavedEvent {
	return a.saved
}

// Stop halts the loop, waits for an in-flight save to finish and closes
// the Saved channel. Safe to call more than once.
func (a *AutoSaver) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
		close(a.saved)
	})
}

// SavedVisible reports whether the indicator for a save at savedAt is still
// shown at now.
func SavedVisible(savedAt, now time.Time) bool {
	return !savedAt.IsZero() && now.Before(savedAt.Add(SavedIndicatorTTL))
}
