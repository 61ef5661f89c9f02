// Package source provides the record sources the dashboard loads
// applications from: the tracking API over HTTP, a local demo file, or a
// Postgres table.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// Kinds of record source.
const (
	KindHTTP     = "http"
	KindFile     = "file"
	KindPostgres = "postgres"
)

// Config selects and configures a record source.
type Config struct {
	Kind        string
	URL         string // http endpoint or postgres connection string
	Path        string // demo file
	Table       string // postgres table, default "applications"
	HTTPTimeout time.Duration
}

// Source is a record source that may hold resources.
type Source interface {
	model.RecordSource
	Close() error
}

// Open builds the source described by cfg.
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindHTTP, "":
		if cfg.URL == "" {
			return nil, fmt.Errorf("source: http source needs a url")
		}
		return NewHTTP(cfg.URL, cfg.HTTPTimeout), nil
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("source: file source needs a path")
		}
		return NewFile(cfg.Path), nil
	case KindPostgres:
		return NewPostgres(ctx, cfg.URL, cfg.Table)
	}
	return nil, fmt.Errorf("source: unknown kind %q", cfg.Kind)
}
