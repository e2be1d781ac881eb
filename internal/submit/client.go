// Package submit delivers export payloads to a remote collection endpoint.
package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrStatus is wrapped by Submit when the endpoint answers with a non-2xx status.
var ErrStatus = errors.New("unexpected response status")

// Client POSTs JSON payloads to one fixed endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for url. A zero timeout means no client-side
// deadline beyond the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint the client submits to.
func (c *Client) URL() string { return c.url }

// Submit sends payload with Content-Type application/json. The response body
// is discarded; only the status class is inspected.
func (c *Client) Submit(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("submit.Client.Submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit.Client.Submit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submit.Client.Submit: %w: %d", ErrStatus, resp.StatusCode)
	}
	return nil
}
