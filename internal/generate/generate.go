// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate wraps a generative-text backend with a bounded retry
// policy. Generation never fails outright: exhausted retries and a missing
// backend both produce a degraded Result whose Text is safe to embed in an
// article.
package generate

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Placeholder texts returned in place of generated content.
const (
	Unavailable  = "Content generation unavailable - check API key"
	FailedPrefix = "Content generation failed: "
)

// Backend produces text for a single prompt. Implementations make one
// attempt; retrying is the Client's job.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one generation step. Degraded is set when Text
// is a placeholder rather than model output; Err carries the last backend
// error in that case.
type Result struct {
	Text     string
	Degraded bool
	Err      error
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// sleep waits for d or until ctx is done. Tests replace it to record
// backoff durations.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Client calls a Backend with retry.
type Client struct {
	backend     Backend
	maxAttempts int
	log         zerolog.Logger
}

// NewClient returns a Client over backend. A nil backend is valid and puts
// the client in placeholder mode.
func NewClient(backend Backend, maxAttempts int, log zerolog.Logger) *Client {
	if maxAttempts <= 0 {
		maxAttempts = types.DefaultMaxAttempts
	}
	return &Client{backend: backend, maxAttempts: maxAttempts, log: log}
}

// Available reports whether a backend is configured.
func (c *Client) Available() bool {
	return c.backend != nil
}

// Generate sends prompt to the backend, retrying failures with exponential
// backoff (1s, 2s, ...). No sleep follows the final attempt.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	if c.backend == nil {
		return Result{Text: Unavailable, Degraded: true}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.attempt(ctx, prompt)
		if err == nil {
			return Result{Text: text}
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt == c.maxAttempts {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
		c.log.Warn().Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("generation attempt failed")
		if err := sleep(ctx, backoff); err != nil {
			lastErr = err
			break
		}
	}

	return Result{
		Text:     FailedPrefix + lastErr.Error(),
		Degraded: true,
		Err:      lastErr,
	}
}

// attempt runs one backend call in its own goroutine so a slow backend never
// holds the caller past ctx cancellation.
func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	type reply struct {
		text string
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- reply{err: fmt.Errorf("backend panic: %v", r)}
			}
		}()
		text, err := c.backend.Generate(ctx, prompt)
		ch <- reply{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

// NewBackend builds the backend selected by cfg.Provider. An empty API key
// returns a nil Backend and no error; the agent then runs in placeholder
// mode. client carries the session's transport for HTTP-based backends.
func NewBackend(ctx context.Context, cfg types.GenerationConfig, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case types.ProviderGemini, "":
		g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case types.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, client), nil
	case types.ProviderAnthropic:
		return &Claude{APIKey: cfg.APIKey, Model: cfg.Model, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
