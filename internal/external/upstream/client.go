// Package upstream is the JSON-over-HTTPS plumbing shared by the Square and
// CRM clients: request building, auth headers, status classification and
// per-call metrics.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"SquareBridge/pkg/metrics"
)

const maxErrorBody = 2 * 1024

type Config struct {
	// Service labels metrics and errors, e.g. "square" or "ghl".
	Service string
	BaseURL string
	// Headers are sent on every request (Authorization, Version, ...).
	Headers    map[string]string
	HTTPClient *http.Client
}

type Client struct {
	service string
	baseURL string
	headers map[string]string
	http    *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Client{
		service: cfg.Service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: headers,
		http:    httpClient,
	}
}

func (c *Client) Service() string {
	return c.service
}

// Do sends body (if non-nil) as JSON and decodes a 2xx response into out (if non-nil).
// operation labels the call in metrics.
func (c *Client) Do(ctx context.Context, operation, method, path string, body, out any) error {
	_, err := c.Call(ctx, operation, method, path, body, out)
	return err
}

// Call is Do that also reports the response status, 0 when no response arrived.
func (c *Client) Call(ctx context.Context, operation, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s %s: marshal request: %w", c.service, operation, err)
		}
		reader = bytes.NewReader(j)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%s %s: create request: %w", c.service, operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.service, operation, 0, started)
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%s %s: %w", c.service, operation, ctx.Err())
		}
		return 0, fmt.Errorf("%s %s: %w: %v", c.service, operation, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.ObserveUpstream(c.service, operation, resp.StatusCode, started)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s %s: read response: %w: %v", c.service, operation, ErrUnavailable, err)
	}

	if err := classify(resp.StatusCode, raw); err != nil {
		return resp.StatusCode, fmt.Errorf("%s %s: %w", c.service, operation, err)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%s %s: %w: %v", c.service, operation, ErrMalformedResponse, err)
	}
	return resp.StatusCode, nil
}

func classify(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	body := string(raw)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var kind error
	switch {
	case status == http.StatusBadRequest:
		kind = ErrBadRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = ErrUnauthorized
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusUnprocessableEntity:
		kind = ErrUnprocessable
	case status == http.StatusTooManyRequests, status >= 500:
		kind = ErrUnavailable
	default:
		kind = fmt.Errorf("unexpected status code %d", status)
	}

	return &StatusError{Kind: kind, StatusCode: status, Body: body}
}

// BearerAuth builds the Authorization header value for a token.
func BearerAuth(token string) string {
	return "Bearer " + token
}
