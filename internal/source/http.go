package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

const maxPayload = 16 << 20

// HTTP fetches records from the tracking API.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP returns a source reading url. A non-positive timeout uses 10s.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{url: url, client: &http.Client{Timeout: timeout}}
}

// FetchApplications performs one GET. 404, 425 and 503 mean the data has
// not been published yet and map to model.ErrNotReady.
func (h *HTTP) FetchApplications(ctx context.Context) ([]model.ApplicationRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: GET %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusTooEarly, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("source: GET %s: %s: %w", h.url, resp.Status, model.ErrNotReady)
	default:
		return nil, fmt.Errorf("source: GET %s: unexpected status %s", h.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", h.url, err)
	}
	return model.DecodeApplications(body)
}

// Close releases idle connections.
func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
