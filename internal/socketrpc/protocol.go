package socketrpc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSON-RPC 2.0 Method Reference
//
// The socket RPC server exposes model.ReadAPI over a Unix domain socket.
//
//   Method              Params                          Result
//   ────────────────    ────────────────────────────    ───────────────────────
//   ListApplications    (none)                          []ApplicationRecord
//   SaveDraft           {Key: string, Value: string}    true
//   LoadDraft           {Key: string}                   {Value: string, Found: bool}
//   ClearDraft          {Key: string}                   true
//
// Error codes follow JSON-RPC 2.0:
//   -32700  Parse error (malformed JSON)
//   -32601  Method not found
//   -32602  Invalid params
//   -32603  Internal error (marshal failure)
//   -32000  Application error (store failure)
//   -32001  Not ready (no applications synced yet)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

const (
	codeParse          = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
	codeApplication    = -32000
	codeNotReady       = -32001
)

type draftParams struct {
	Key   string
	Value string
}

type loadDraftResult struct {
	Value string
	Found bool
}

// DefaultSocketPath returns the default Unix socket path.
// It prefers $XDG_RUNTIME_DIR/applytrack/applytrack.sock, falling back to
// ~/.local/state/applytrack/applytrack.sock.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "applytrack", "applytrack.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "applytrack.sock")
	}
	return filepath.Join(home, ".local", "state", "applytrack", "applytrack.sock")
}
