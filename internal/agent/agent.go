// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent turns a topic into a finished article. Each call to
// Agent.Write opens a Session, gathers research, runs the content pipeline
// and the SEO finisher, and closes the Session on every exit path.
package agent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/research"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// BackendFactory builds the generation backend for a session.
type BackendFactory func(ctx context.Context, cfg types.GenerationConfig, client *http.Client) (generate.Backend, error)

// CoordinatorFactory builds the research coordinator for a session.
type CoordinatorFactory func(client *http.Client, cfg types.Config, log zerolog.Logger) *research.Coordinator

type options struct {
	backendFactory     BackendFactory
	coordinatorFactory CoordinatorFactory
	cache              research.Cache
	now                func() time.Time
}

// Option configures an Agent.
type Option func(*options)

// WithBackendFactory replaces the generation backend constructor.
func WithBackendFactory(f BackendFactory) Option {
	return func(o *options) { o.backendFactory = f }
}

// WithCoordinatorFactory replaces the research coordinator constructor.
func WithCoordinatorFactory(f CoordinatorFactory) Option {
	return func(o *options) { o.coordinatorFactory = f }
}

// WithCache caches provider results in c. It only affects the default
// coordinator.
func WithCache(c research.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithClock sets the source of Article.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Agent writes articles. It holds configuration only; all network state
// lives in the per-request Session, so one Agent serves concurrent callers.
type Agent struct {
	cfg  types.Config
	opts options
	log  zerolog.Logger
}

// New returns an Agent for cfg. Unset config fields take their defaults.
func New(cfg types.Config, log zerolog.Logger, opts ...Option) *Agent {
	cfg.ApplyDefaults()

	a := &Agent{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(&a.opts)
	}
	if a.opts.backendFactory == nil {
		a.opts.backendFactory = generate.NewBackend
	}
	if a.opts.coordinatorFactory == nil {
		cache := a.opts.cache
		a.opts.coordinatorFactory = func(client *http.Client, cfg types.Config, log zerolog.Logger) *research.Coordinator {
			return research.NewDefaultCoordinator(client, cfg, cache, log)
		}
	}
	if a.opts.now == nil {
		a.opts.now = time.Now
	}
	return a
}

// Write produces the article for req. Input errors are reported before any
// network work. Provider and generation failures never fail the call; they
// show up as empty research and as degraded text with Article.Degraded set.
func (a *Agent) Write(ctx context.Context, req types.Request) (*types.Article, error) {
	topic, tone, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	s, err := OpenSession(ctx, a.cfg, a.opts, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("closing session")
		}
	}()

	bundle, err := s.Research(ctx, topic)
	if err != nil {
		return nil, err
	}

	article := &types.Article{
		ID:        uuid.NewString(),
		Topic:     topic,
		Tone:      tone,
		Metadata:  types.NewMetadata(topic),
		CreatedAt: a.opts.now().UTC(),
	}
	if a.cfg.Generation.SlugFromTitle {
		article.Metadata.Slug = ""
	}

	s.log.Info().Msg("Generating content...")
	if err := writeContent(ctx, s, article, bundle); err != nil {
		return nil, err
	}

	s.log.Info().Msg("Optimizing for SEO...")
	if err := finishSEO(ctx, s, article); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("writing article: %w", err)
	}

	s.log.Info().
		Str("slug", article.Metadata.Slug).
		Int("reading_time", article.Metadata.ReadingTime).
		Bool("degraded", article.Degraded).
		Msg("article complete")
	return article, nil
}
