package main

import (
	"github.com/tinytelemetry/applytrack/internal/model"
)

// syncGate reports whether the first sync has finished.
type syncGate interface {
	Synced() bool
}

// gatedStore hides an empty store behind model.ErrNotReady until the first
// sync has run, so socket clients keep polling instead of showing an empty
// dashboard during startup.
type gatedStore struct {
	model.ReadAPI
	counter interface{ CountApplications() (int64, error) }
	gate    syncGate
}

func (g gatedStore) ListApplications() ([]model.ApplicationRecord, error) {
	if !g.gate.Synced() {
		if n, err := g.counter.CountApplications(); err != nil || n == 0 {
			return nil, model.ErrNotReady
		}
	}
	return g.ReadAPI.ListApplications()
}
