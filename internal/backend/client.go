package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// ErrFetch matches every error returned by FetchMessage.
var ErrFetch = errors.New("backend: fetch failed")

// FetchError describes why a message could not be fetched. Network, HTTP and
// payload failures are not distinguished beyond the wrapped cause.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("backend: fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Client reads the message from a single fixed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	requests atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a client for endpoint. No request timeout is set.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client reads from.
func (c *Client) Endpoint() string { return c.endpoint }

// Requests returns the number of requests issued so far. It is kept for
// observation only; the client never limits on it.
func (c *Client) Requests() int64 { return c.requests.Load() }

// FetchMessage issues one GET to the endpoint and returns the "message" field
// of the JSON object in the response body.
func (c *Client) FetchMessage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", c.fail(err)
	}

	c.requests.Add(1)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", c.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(fmt.Errorf("read body: %w", err))
	}

	msg, err := decodeMessage(body)
	if err != nil {
		return "", c.fail(err)
	}
	return msg, nil
}

func (c *Client) fail(err error) error {
	return &FetchError{Endpoint: c.endpoint, Err: err}
}

// decodeMessage extracts "message" from a JSON object. Strings are returned
// unquoted, null as "", anything else as compact JSON.
func decodeMessage(body []byte) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	if payload == nil {
		return "", errors.New("decode body: not a JSON object")
	}

	raw, ok := payload["message"]
	if !ok {
		return "", errors.New(`decode body: missing "message" field`)
	}

	// null unmarshals into s as a no-op.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("decode message: %w", err)
	}
	return buf.String(), nil
}
