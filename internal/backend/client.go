package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	dashboard "home_dashboard"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20 // 4 MB
)

// NetworkError is a transport or decoding failure talking to the backend.
type NetworkError struct {
	Op     string // GET /obtener_log, POST /enviar_comando, ...
	Status int    // HTTP status when a response was received
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client talks JSON over HTTP to the assistant backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchState polls the log and state endpoint.
func (c *Client) FetchState(ctx context.Context) (dashboard.StateResponse, error) {
	var out dashboard.StateResponse
	err := c.do(ctx, http.MethodGet, dashboard.PathState, nil, &out)
	return out, err
}

// SendCommand submits one operator command.
func (c *Client) SendCommand(ctx context.Context, command string) (dashboard.CommandResponse, error) {
	var out dashboard.CommandResponse
	err := c.do(ctx, http.MethodPost, dashboard.PathCommand, dashboard.CommandRequest{Command: command}, &out)
	return out, err
}

// ConfirmSave sends the operator's yes/no answer.
func (c *Client) ConfirmSave(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error) {
	var out dashboard.SaveChoiceResponse
	err := c.do(ctx, http.MethodPost, dashboard.PathConfirmSave, dashboard.SaveChoiceRequest{Choice: choice}, &out)
	return out, err
}

// do performs the request and decodes the JSON body into out.
// The body is decoded whatever the status: the backend answers 503 with a
// regular payload while it is still warming up.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
