package socketrpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// Client implements model.ReadAPI over a Unix domain socket using JSON-RPC 2.0.
// Calls are serialized over one connection.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	nextID  int
	scanner *bufio.Scanner
	encoder *json.Encoder
	timeout time.Duration
}

var _ model.ReadAPI = (*Client)(nil)

// Dial connects to the socket RPC server at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("socketrpc: dial: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	return &Client{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
		timeout: 30 * time.Second,
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call sends one request and decodes its result into dest.
func (c *Client) call(method string, params any, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("socketrpc: marshal params: %w", err)
	}
	c.nextID++
	req := Request{JSONRPC: "2.0", ID: c.nextID, Method: method, Params: paramsData}

	c.conn.SetDeadline(time.Now().Add(c.timeout))
	defer c.conn.SetDeadline(time.Time{})

	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("socketrpc: send %s: %w", method, err)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("socketrpc: read %s: %w", method, err)
		}
		return fmt.Errorf("socketrpc: connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("socketrpc: unmarshal response: %w", err)
	}
	if resp.Error != nil {
		if resp.Error.Code == codeNotReady {
			return fmt.Errorf("socketrpc: %s: %w", method, model.ErrNotReady)
		}
		return resp.Error
	}
	if resp.ID != req.ID {
		return fmt.Errorf("socketrpc: response id %d does not match request %d", resp.ID, req.ID)
	}
	if dest != nil {
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("socketrpc: unmarshal result: %w", err)
		}
	}
	return nil
}

// ListApplications returns the server's stored records.
func (c *Client) ListApplications() ([]model.ApplicationRecord, error) {
	var result []model.ApplicationRecord
	err := c.call("ListApplications", struct{}{}, &result)
	return result, err
}

func (c *Client) SaveDraft(key, value string) error {
	return c.call("SaveDraft", draftParams{Key: key, Value: value}, nil)
}

func (c *Client) LoadDraft(key string) (string, bool, error) {
	var result loadDraftResult
	err := c.call("LoadDraft", draftParams{Key: key}, &result)
	return result.Value, result.Found, err
}

func (c *Client) ClearDraft(key string) error {
	return c.call("ClearDraft", draftParams{Key: key}, nil)
}
