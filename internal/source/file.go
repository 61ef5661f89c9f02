package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// File reads records from a demo file in JSON or YAML. The document is
// either a list of records or a mapping with an "applications" list.
type File struct {
	path string
}

// NewFile returns a source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file being read.
func (f *File) Path() string { return f.path }

// FetchApplications reads and decodes the file. A missing file is not ready.
func (f *File) FetchApplications(ctx context.Context) ([]model.ApplicationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("source: %s: %w", f.path, model.ErrNotReady)
	}
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", f.path, err)
	}

	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("source: parse %s: %w", f.path, err)
		}
	}
	records, err := model.DecodeApplications(data)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", f.path, err)
	}
	return records, nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }

// yamlToJSON re-encodes a YAML document as JSON so records decode through
// the same lenient path as API payloads.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
