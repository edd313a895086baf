// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the blog-engine pipeline:
// the request contract, research results, article metadata, and the
// configuration every stage is built from.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ErrEmptyTopic is returned when a request carries no usable topic.
var ErrEmptyTopic = errors.New("topic is required")

// Tone is the stylistic directive applied to every generation prompt.
type Tone string

const (
	ToneEducational Tone = "educational"
	ToneFormal      Tone = "formal"
	ToneCreative    Tone = "creative"
	ToneTechnical   Tone = "technical"
)

// Tones lists the accepted tones in display order.
var Tones = []Tone{ToneEducational, ToneFormal, ToneCreative, ToneTechnical}

// ParseTone maps s onto a known Tone. Unknown or empty input yields
// ToneEducational; it never fails.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones {
		if t == known {
			return t
		}
	}
	return ToneEducational
}

// Request is the caller contract for one article.
type Request struct {
	Topic string `json:"topic" validate:"required"`
	Tone  string `json:"tone,omitempty"`
}

// Normalize returns the trimmed topic and the parsed tone, or ErrEmptyTopic
// when the topic is empty or whitespace only.
func (r Request) Normalize() (string, Tone, error) {
	topic := strings.TrimSpace(r.Topic)
	if topic == "" {
		return "", "", ErrEmptyTopic
	}
	return topic, ParseTone(r.Tone), nil
}

// NewsItem is one article returned by the news provider. Only Title feeds
// the prompts; the rest is kept for display.
type NewsItem struct {
	Title   string `json:"title" yaml:"title"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
	Source  string `json:"source_id,omitempty" yaml:"source_id,omitempty"`
	PubDate string `json:"pubDate,omitempty" yaml:"pub_date,omitempty"`
}

// ResearchBundle is the unified result of the three research providers.
// Any list may be empty.
type ResearchBundle struct {
	News     []NewsItem `json:"news" yaml:"news"`
	Keywords []string   `json:"keywords" yaml:"keywords"`
	Quotes   []string   `json:"quotes" yaml:"quotes"`
}

// NewsTitles returns the titles of the news items in order.
func (b ResearchBundle) NewsTitles() []string {
	titles := make([]string, 0, len(b.News))
	for _, n := range b.News {
		titles = append(titles, n.Title)
	}
	return titles
}

// Metadata is the SEO record of an article. Fields are only ever filled;
// Title and Slug are never overwritten once set.
type Metadata struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Quotes      []string `json:"quotes" yaml:"quotes"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	ReadingTime int      `json:"reading_time" yaml:"reading_time"`
	Outline     string   `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// NewMetadata returns the initial metadata for topic: a default slug,
// empty text fields, and a reading time of one minute.
func NewMetadata(topic string) Metadata {
	return Metadata{
		Slug:        DefaultSlug(topic),
		Keywords:    []string{},
		Quotes:      []string{},
		ReadingTime: 1,
	}
}

const maxSlugLen = 50

// DefaultSlug derives a basic slug from topic with Slugify, cut to 50
// characters.
func DefaultSlug(topic string) string {
	r := []rune(Slugify(topic))
	if len(r) > maxSlugLen {
		r = r[:maxSlugLen]
	}
	return strings.TrimRight(string(r), "-")
}

// Slugify lower-cases s, drops quotes, commas and periods, and turns every
// other run of characters that are not letters or digits into a single
// hyphen. The result never starts or ends with a hyphen and never contains
// a path separator.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '"' || r == ',' || r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pending {
				b.WriteByte('-')
				pending = false
			}
			b.WriteRune(r)
		default:
			pending = b.Len() > 0
		}
	}
	return b.String()
}

// Article is the product of one generation request.
type Article struct {
	ID       string   `json:"id" yaml:"id"`
	Topic    string   `json:"topic" yaml:"topic"`
	Tone     Tone     `json:"tone" yaml:"tone"`
	Content  string   `json:"content" yaml:"content"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// Degraded is set when any generation step returned placeholder or
	// failure text. Degraded keyword and slug replies are never stored:
	// Keywords stays empty and Slug falls back to DefaultSlug(Topic).
	Degraded bool `json:"degraded" yaml:"degraded"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ResponseMetadata is the metadata shape returned to HTTP clients.
type ResponseMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ReadingTime string   `json:"readingTime"`
	Slug        string   `json:"slug"`
}

// Response is the success body of the generate endpoint.
type Response struct {
	Content  string           `json:"content"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ErrorResponse is the failure body of the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Response converts the article to the client-facing shape.
func (a *Article) Response() Response {
	tags := a.Metadata.Keywords
	if tags == nil {
		tags = []string{}
	}
	return Response{
		Content: a.Content,
		Metadata: ResponseMetadata{
			Title:       a.Metadata.Title,
			Description: a.Metadata.Description,
			Tags:        tags,
			ReadingTime: FormatReadingTime(a.Metadata.ReadingTime),
			Slug:        a.Metadata.Slug,
		},
	}
}

// FormatReadingTime renders minutes as "<N> min read".
func FormatReadingTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}
