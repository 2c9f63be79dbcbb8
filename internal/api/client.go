// Package api is the one HTTP funnel to the backend: a client bound to a
// base URL that speaks JSON both ways. Every service module goes through
// it; nothing else in the repo touches net/http directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client wraps an http.Client with a fixed base URL and a JSON
// content-type on every request. No retries, no deadlines of its own;
// cancellation comes from the caller's context.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client rooted at baseURL (trailing slash stripped).
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// Get issues a GET and decodes the JSON response into out (skipped when
// out is nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with body marshalled as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Error is a non-2xx backend response. Detail carries the backend's
// human-readable "detail" field when the body had one.
type Error struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Body: body}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Detail = payload.Detail
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend: %d", e.StatusCode)
}

// ErrorMessage derives the user-facing string for a failed call: the
// backend detail when present, otherwise the call site's fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
