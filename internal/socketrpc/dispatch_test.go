package socketrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// stubStore returns fixed values for dispatch unit testing.
type stubStore struct {
	drafts map[string]string
	err    error
}

func (s *stubStore) ListApplications() ([]model.ApplicationRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.ApplicationRecord{{ID: "1", Company: "Acme", Status: "Applied"}}, nil
}
func (s *stubStore) SaveDraft(key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.drafts[key] = value
	return nil
}
func (s *stubStore) LoadDraft(key string) (string, bool, error) {
	v, ok := s.drafts[key]
	return v, ok, s.err
}
func (s *stubStore) ClearDraft(key string) error {
	delete(s.drafts, key)
	return s.err
}

func newTestDispatcher() *Server {
	return &Server{store: &stubStore{drafts: map[string]string{"form_autosave_a": `{"values":{}}`}}}
}

func TestDispatch_AllMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		params string
	}{
		{"ListApplications", `{}`},
		{"SaveDraft", `{"Key":"form_autosave_b","Value":"{}"}`},
		{"LoadDraft", `{"Key":"form_autosave_a"}`},
		{"ClearDraft", `{"Key":"form_autosave_a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()
			srv := newTestDispatcher()
			resp := srv.dispatch(Request{
				JSONRPC: "2.0",
				ID:      1,
				Method:  tt.method,
				Params:  json.RawMessage(tt.params),
			})
			if resp.Error != nil {
				t.Fatalf("dispatch(%s) error: %s", tt.method, resp.Error.Message)
			}
			if resp.Result == nil {
				t.Fatalf("dispatch(%s) returned nil result", tt.method)
			}
			if resp.JSONRPC != "2.0" || resp.ID != 1 {
				t.Errorf("envelope = %q/%d", resp.JSONRPC, resp.ID)
			}
		})
	}
}

func TestDispatch_LoadDraftResult(t *testing.T) {
	t.Parallel()
	srv := newTestDispatcher()

	resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 3, Method: "LoadDraft", Params: json.RawMessage(`{"Key":"form_autosave_a"}`)})
	var got loadDraftResult
	if err := json.Unmarshal(resp.Result, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Found || got.Value != `{"values":{}}` {
		t.Fatalf("result = %+v", got)
	}

	resp = srv.dispatch(Request{JSONRPC: "2.0", ID: 4, Method: "LoadDraft", Params: json.RawMessage(`{"Key":"form_autosave_zzz"}`)})
	got = loadDraftResult{}
	json.Unmarshal(resp.Result, &got)
	if got.Found {
		t.Fatalf("missing draft reported found: %+v", got)
	}
}

func TestDispatch_MethodNotFound(t *testing.T) {
	t.Parallel()
	srv := newTestDispatcher()

	resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 1, Method: "NonExistentMethod", Params: json.RawMessage(`{}`)})
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != codeMethodNotFound {
		t.Errorf("error code = %d, want %d", resp.Error.Code, codeMethodNotFound)
	}
}

func TestDispatch_InvalidParams(t *testing.T) {
	t.Parallel()
	srv := newTestDispatcher()

	for _, params := range []string{`not json`, `{}`, `{"Key":""}`} {
		resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 2, Method: "SaveDraft", Params: json.RawMessage(params)})
		if resp.Error == nil || resp.Error.Code != codeInvalidParams {
			t.Errorf("params %s: error = %+v, want invalid params", params, resp.Error)
		}
	}
}

func TestDispatch_StoreFailure(t *testing.T) {
	t.Parallel()
	srv := &Server{store: &stubStore{drafts: map[string]string{}, err: errors.New("database is locked")}}

	resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 5, Method: "ListApplications"})
	if resp.Error == nil || resp.Error.Code != codeApplication {
		t.Fatalf("error = %+v, want application error", resp.Error)
	}
}

func TestDispatch_NotReady(t *testing.T) {
	t.Parallel()
	srv := &Server{store: &stubStore{drafts: map[string]string{}, err: fmt.Errorf("sync pending: %w", model.ErrNotReady)}}

	resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 6, Method: "ListApplications"})
	if resp.Error == nil || resp.Error.Code != codeNotReady {
		t.Fatalf("error = %+v, want not-ready error", resp.Error)
	}
}

func TestDispatch_PreservesRequestID(t *testing.T) {
	t.Parallel()
	srv := newTestDispatcher()

	for _, id := range []int{0, 1, 42, 9999} {
		resp := srv.dispatch(Request{JSONRPC: "2.0", ID: id, Method: "ListApplications", Params: json.RawMessage(`{}`)})
		if resp.ID != id {
			t.Errorf("request ID %d: response ID = %d", id, resp.ID)
		}
	}
}
