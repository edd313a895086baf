// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"math"
	"strings"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/pkg/types"
)

const (
	maxDescriptionLen = 160
	wordsPerMinute    = 200
)

// finishSEO fills the empty metadata fields of a in order: title,
// description, keywords, slug, then reading time. Fields that already hold
// a value are left alone.
func finishSEO(ctx context.Context, g generator, a *types.Article) error {
	md := &a.Metadata
	data := generate.PromptData{Topic: a.Topic, Tone: a.Tone}

	if md.Title == "" {
		text, err := step(ctx, g, a, generate.TitlePrompt(data))
		if err != nil {
			return err
		}
		md.Title = cleanTitle(text)
	}

	if md.Description == "" {
		text, err := step(ctx, g, a, generate.DescriptionPrompt(data))
		if err != nil {
			return err
		}
		md.Description = truncateRunes(text, maxDescriptionLen)
	}

	// Keywords and slug are parsed, so degraded text is never stored in them.
	if len(md.Keywords) == 0 {
		r, err := g.Generate(ctx, generate.KeywordsPrompt(data))
		if err != nil {
			return err
		}
		if r.Degraded {
			a.Degraded = true
		} else {
			md.Keywords = parseKeywords(r.Text)
		}
	}

	if md.Slug == "" {
		data.Title = md.Title
		r, err := g.Generate(ctx, generate.SlugPrompt(data))
		if err != nil {
			return err
		}
		if r.Degraded {
			a.Degraded = true
		} else {
			md.Slug = cleanSlug(r.Text)
		}
		if md.Slug == "" {
			md.Slug = types.DefaultSlug(a.Topic)
		}
	}

	md.ReadingTime = readingTime(a.Content)
	return nil
}

func cleanTitle(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// parseKeywords splits a comma-separated list into trimmed, non-empty
// entries.
func parseKeywords(s string) []string {
	keywords := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func cleanSlug(s string) string {
	return types.Slugify(s)
}

// readingTime is the whitespace word count over 200, rounded half to even,
// and never less than one minute.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.RoundToEven(float64(words) / wordsPerMinute))
	return max(1, minutes)
}
