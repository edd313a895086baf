// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Provider endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	newsdataAPIBase = "https://newsdata.io/api/1/news"
	datamuseAPIBase = "https://api.datamuse.com/words"
	quotableAPIBase = "https://api.quotable.io/search/quotes"
)

// Result bounds per provider.
const (
	newsLimit    = 3
	keywordLimit = 10
	quoteLimit   = 2
)

// NewsData searches recent news on newsdata.io. It needs an API key; without
// one Fetch returns no items and makes no request.
type NewsData struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (n *NewsData) Name() string { return "newsdata" }

// Fetch returns up to three English news items matching topic.
func (n *NewsData) Fetch(ctx context.Context, topic string) ([]types.NewsItem, error) {
	if n.APIKey == "" {
		return nil, nil
	}

	params := url.Values{
		"apikey":   {n.APIKey},
		"q":        {topic},
		"language": {"en"},
		"size":     {strconv.Itoa(newsLimit)},
	}

	var nr newsdataResponse
	status, err := httputil.GetJSON(ctx, n.Client, newsdataAPIBase, params, &nr)
	if err != nil {
		return nil, fmt.Errorf("newsdata request: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("newsdata returned HTTP %d", status)
	}
	return limit(nr.Results, newsLimit), nil
}

type newsdataResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Results      []types.NewsItem `json:"results"`
}

// Datamuse looks up words with a meaning similar to the topic.
type Datamuse struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (d *Datamuse) Name() string { return "datamuse" }

// Fetch returns up to ten related words for topic.
func (d *Datamuse) Fetch(ctx context.Context, topic string) ([]string, error) {
	params := url.Values{
		"ml":  {topic},
		"max": {strconv.Itoa(keywordLimit)},
	}

	var words []datamuseWord
	status, err := httputil.GetJSON(ctx, d.Client, datamuseAPIBase, params, &words)
	if err != nil {
		return nil, fmt.Errorf("datamuse request: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("datamuse returned HTTP %d", status)
	}

	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if w.Word != "" {
			keywords = append(keywords, w.Word)
		}
	}
	return limit(keywords, keywordLimit), nil
}

type datamuseWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Quotable searches the Quotable quotation index.
type Quotable struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (q *Quotable) Name() string { return "quotable" }

// Fetch returns up to two quotes matching topic, each formatted as
// `"content" - author`.
func (q *Quotable) Fetch(ctx context.Context, topic string) ([]string, error) {
	params := url.Values{
		"query": {topic},
		"limit": {strconv.Itoa(quoteLimit)},
	}

	var qr quotableResponse
	status, err := httputil.GetJSON(ctx, q.Client, quotableAPIBase, params, &qr)
	if err != nil {
		return nil, fmt.Errorf("quotable request: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("quotable returned HTTP %d", status)
	}

	quotes := make([]string, 0, len(qr.Results))
	for _, r := range qr.Results {
		quotes = append(quotes, FormatQuote(r.Content, r.Author))
	}
	return limit(quotes, quoteLimit), nil
}

// FormatQuote renders a quotation with its attribution.
func FormatQuote(content, author string) string {
	return fmt.Sprintf(`"%s" - %s`, content, author)
}

type quotableResponse struct {
	Count   int             `json:"count"`
	Results []quotableQuote `json:"results"`
}

type quotableQuote struct {
	ID      string `json:"_id"`
	Content string `json:"content"`
	Author  string `json:"author"`
}
