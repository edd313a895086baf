// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by the research providers
// and generation backends of one agent session.
package httputil

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// NewClient builds an HTTP client with its own transport so that closing
// one session's idle connections never touches another session. TLS
// verification stays on unless cfg.InsecureSkipVerify is set.
func NewClient(cfg types.HTTPConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in only
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: transport, userAgent: cfg.UserAgent},
	}
}

// CloseIdle releases the pooled connections held by client.
func CloseIdle(client *http.Client) {
	if client != nil {
		client.CloseIdleConnections()
	}
}

// userAgentTransport sets a default User-Agent on requests that have none.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// CloseIdleConnections forwards to the wrapped transport so
// http.Client.CloseIdleConnections reaches the pool.
func (t *userAgentTransport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	if c, ok := t.base.(closeIdler); ok {
		c.CloseIdleConnections()
	}
}

// GetJSON issues a GET to base with params and decodes a 200 response body
// into out. It returns the status code; a non-200 status is not an error,
// the body is drained and out is left untouched.
func GetJSON(ctx context.Context, client *http.Client, base string, params url.Values, out any) (int, error) {
	reqURL := base
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if client == nil {
		client = &http.Client{Timeout: types.DefaultTimeout}
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response after %v: %w", time.Since(start).Round(time.Millisecond), err)
	}
	return resp.StatusCode, nil
}
