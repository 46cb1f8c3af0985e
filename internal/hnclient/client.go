// Package hnclient wraps outbound access to the Hacker News Firebase API.
package hnclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public v0 API root.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

const userAgent = "kindling/1.0"

// Client issues JSON GET requests against the upstream API. A single
// long-lived Client is shared by all providers; it holds no per-request
// state, so it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given API root. timeout applies to every
// outbound call.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetJSON fetches baseURL+path and decodes the response body into v.
// Transport failures, non-2xx statuses and malformed payloads are all
// returned as errors; providers collapse them into absent/empty results.
//
// The upstream API answers a JSON "null" body for unknown IDs, which
// decodes into an untouched v; callers pass a pointer-to-pointer and check
// for nil to detect that case.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
