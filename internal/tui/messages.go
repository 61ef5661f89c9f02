package tui

import (
	"time"

	"github.com/tinytelemetry/applytrack/internal/forms"
	"github.com/tinytelemetry/applytrack/internal/model"
)

// loadAttemptMsg starts fetch attempt number attempt (1-based).
type loadAttemptMsg struct{ attempt int }

// loadResultMsg carries the outcome of one fetch attempt.
type loadResultMsg struct {
	attempt int
	records []model.ApplicationRecord
	err     error
}

// spinnerTickMsg re-renders the loading indicator.
type spinnerTickMsg struct{}

// toastExpiredMsg re-renders once a notification has timed out.
type toastExpiredMsg struct{}

// draftsClearedMsg reports the clearDrafts menu action.
type draftsClearedMsg struct{ err error }

// draftOpMsg reports a manual draft save, load or clear on the form page.
type draftOpMsg struct {
	op    string
	draft model.Draft
	found bool
	err   error
}

// savedMsg is delivered for each autosave write.
type savedMsg struct{ event forms.SavedEvent }

// savedFadeMsg hides the saved indicator once it has expired.
type savedFadeMsg struct{}

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerFrame(now time.Time) string {
	return spinnerFrames[now.UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}
