// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers background material for an article from three
// web APIs (news, related keywords, quotations) and merges the results into
// one ResearchBundle.
package research

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Source fetches one category of research for a topic. Each provider
// (newsdata.io, Datamuse, Quotable) implements it for its item type.
type Source[T any] interface {
	Name() string
	Fetch(ctx context.Context, topic string) ([]T, error)
}

// Coordinator runs the three sources concurrently.
type Coordinator struct {
	News     Source[types.NewsItem]
	Keywords Source[string]
	Quotes   Source[string]

	log zerolog.Logger
}

// NewCoordinator returns a Coordinator over the given sources. Any source
// may be nil; its category is then always empty.
func NewCoordinator(news Source[types.NewsItem], keywords, quotes Source[string], log zerolog.Logger) *Coordinator {
	return &Coordinator{News: news, Keywords: keywords, Quotes: quotes, log: log}
}

// NewDefaultCoordinator wires the production providers onto client, wrapping
// each in cache when cache is non-nil.
func NewDefaultCoordinator(client *http.Client, cfg types.Config, cache Cache, log zerolog.Logger) *Coordinator {
	var (
		news     Source[types.NewsItem] = &NewsData{Client: client, APIKey: cfg.Providers.NewsDataAPIKey}
		keywords Source[string]         = &Datamuse{Client: client}
		quotes   Source[string]         = &Quotable{Client: client}
	)
	if cache != nil {
		news = NewCached(news, cache, cfg.Cache.TTL, log)
		keywords = NewCached(keywords, cache, cfg.Cache.TTL, log)
		quotes = NewCached(quotes, cache, cfg.Cache.TTL, log)
	}
	return NewCoordinator(news, keywords, quotes, log)
}

// Gather fetches news, keywords, and quotes for topic concurrently and waits
// for all three. A source that fails contributes an empty list and a
// warning; the others are unaffected. Gather never fails.
func (c *Coordinator) Gather(ctx context.Context, topic string) types.ResearchBundle {
	var (
		bundle types.ResearchBundle
		wg     sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		bundle.News = fetch(ctx, c.News, topic, c.log)
	}()
	go func() {
		defer wg.Done()
		bundle.Keywords = fetch(ctx, c.Keywords, topic, c.log)
	}()
	go func() {
		defer wg.Done()
		bundle.Quotes = fetch(ctx, c.Quotes, topic, c.log)
	}()
	wg.Wait()

	c.log.Debug().
		Int("news", len(bundle.News)).
		Int("keywords", len(bundle.Keywords)).
		Int("quotes", len(bundle.Quotes)).
		Msg("research gathered")
	return bundle
}

// fetch runs one source and converts every failure, including a panic,
// into an empty list.
func fetch[T any](ctx context.Context, src Source[T], topic string, log zerolog.Logger) (items []T) {
	if src == nil {
		return []T{}
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("provider", src.Name()).Interface("panic", r).Msg("research fetch panicked")
			items = []T{}
		}
	}()

	got, err := src.Fetch(ctx, topic)
	if err != nil {
		log.Warn().Err(err).Str("provider", src.Name()).Msg("research fetch failed")
		return []T{}
	}
	if got == nil {
		return []T{}
	}
	return got
}

// limit cuts items to at most n entries.
func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
