package forms

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// CounterLevel grades how close a field is to its length limit.
type CounterLevel string

const (
	CounterNormal  CounterLevel = "normal"
	CounterWarning CounterLevel = "warning"
	CounterDanger  CounterLevel = "danger"
)

// Counter is the remaining-characters indicator of a bounded field.
type Counter struct {
	Remaining int
	Max       int
	Level     CounterLevel
}

// NewCounter computes the counter for value under max characters.
func NewCounter(value string, max int) Counter {
	remaining := max - utf8.RuneCountInString(value)
	level := CounterNormal
	switch {
	case remaining < 10:
		level = CounterDanger
	case remaining < 50:
		level = CounterWarning
	}
	return Counter{Remaining: remaining, Max: max, Level: level}
}

// FilePlaceholder is shown when no file is selected.
const FilePlaceholder = "Choose a file..."

// FileLabel returns the display label of a file input.
func FileLabel(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return FilePlaceholder
	}
	// Browsers report C:\fakepath\name on Windows.
	if i := strings.LastIndex(path, `\`); i >= 0 {
		path = path[i+1:]
	}
	return filepath.Base(path)
}
