// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// --- stub sources ---

type stubSource[T any] struct {
	name  string
	items []T
	err   error
	panic bool
	wait  func()
}

func (s *stubSource[T]) Name() string { return s.name }

func (s *stubSource[T]) Fetch(_ context.Context, _ string) ([]T, error) {
	if s.wait != nil {
		s.wait()
	}
	if s.panic {
		panic("boom")
	}
	return s.items, s.err
}

func fixtureSources() (*stubSource[types.NewsItem], *stubSource[string], *stubSource[string]) {
	return &stubSource[types.NewsItem]{name: "news", items: []types.NewsItem{{Title: "Headline"}}},
		&stubSource[string]{name: "keywords", items: []string{"alpha", "beta"}},
		&stubSource[string]{name: "quotes", items: []string{`"Q" - A`}}
}

func TestGatherAllSucceed(t *testing.T) {
	news, kw, quotes := fixtureSources()
	c := NewCoordinator(news, kw, quotes, zerolog.Nop())

	b := c.Gather(context.Background(), "topic")
	assert.Equal(t, []types.NewsItem{{Title: "Headline"}}, b.News)
	assert.Equal(t, []string{"alpha", "beta"}, b.Keywords)
	assert.Equal(t, []string{`"Q" - A`}, b.Quotes)
}

func TestGatherIsolatesSingleFailure(t *testing.T) {
	tests := []struct {
		name   string
		break_ func(n *stubSource[types.NewsItem], k, q *stubSource[string])
		check  func(t *testing.T, b types.ResearchBundle)
	}{
		{
			name:   "news fails",
			break_: func(n *stubSource[types.NewsItem], _, _ *stubSource[string]) { n.err = errors.New("down") },
			check: func(t *testing.T, b types.ResearchBundle) {
				assert.Empty(t, b.News)
				assert.NotNil(t, b.News)
				assert.Equal(t, []string{"alpha", "beta"}, b.Keywords)
				assert.Equal(t, []string{`"Q" - A`}, b.Quotes)
			},
		},
		{
			name:   "keywords fail",
			break_: func(_ *stubSource[types.NewsItem], k, _ *stubSource[string]) { k.err = errors.New("down") },
			check: func(t *testing.T, b types.ResearchBundle) {
				assert.Len(t, b.News, 1)
				assert.Empty(t, b.Keywords)
				assert.Len(t, b.Quotes, 1)
			},
		},
		{
			name:   "quotes panic",
			break_: func(_ *stubSource[types.NewsItem], _, q *stubSource[string]) { q.panic = true },
			check: func(t *testing.T, b types.ResearchBundle) {
				assert.Len(t, b.News, 1)
				assert.Len(t, b.Keywords, 2)
				assert.Empty(t, b.Quotes)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news, kw, quotes := fixtureSources()
			tt.break_(news, kw, quotes)
			c := NewCoordinator(news, kw, quotes, zerolog.Nop())
			tt.check(t, c.Gather(context.Background(), "topic"))
		})
	}
}

func TestGatherNilSourcesAndNilResults(t *testing.T) {
	c := NewCoordinator(nil, &stubSource[string]{name: "kw"}, nil, zerolog.Nop())
	b := c.Gather(context.Background(), "topic")
	assert.NotNil(t, b.News)
	assert.NotNil(t, b.Keywords)
	assert.NotNil(t, b.Quotes)
	assert.Empty(t, b.News)
	assert.Empty(t, b.Keywords)
	assert.Empty(t, b.Quotes)
}

func TestGatherRunsSourcesConcurrently(t *testing.T) {
	// Each source blocks until all three have started; a sequential
	// implementation would never get past the first.
	var started sync.WaitGroup
	started.Add(3)
	barrier := func() {
		started.Done()
		started.Wait()
	}

	news, kw, quotes := fixtureSources()
	news.wait, kw.wait, quotes.wait = barrier, barrier, barrier
	c := NewCoordinator(news, kw, quotes, zerolog.Nop())

	done := make(chan types.ResearchBundle, 1)
	go func() { done <- c.Gather(context.Background(), "topic") }()

	select {
	case b := <-done:
		assert.Len(t, b.News, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("Gather did not run sources concurrently")
	}
}

func TestNewDefaultCoordinatorWiring(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Providers.NewsDataAPIKey = "k"
	client := &http.Client{}

	c := NewDefaultCoordinator(client, cfg, nil, zerolog.Nop())
	assert.IsType(t, &NewsData{}, c.News)
	assert.IsType(t, &Datamuse{}, c.Keywords)
	assert.IsType(t, &Quotable{}, c.Quotes)
	assert.Equal(t, "k", c.News.(*NewsData).APIKey)

	cached := NewDefaultCoordinator(client, cfg, newMemCache(), zerolog.Nop())
	assert.IsType(t, &Cached[types.NewsItem]{}, cached.News)
	assert.Equal(t, "datamuse", cached.Keywords.Name())
}
