// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"strings"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// generator is the slice of Session the pipeline and finisher use.
type generator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (generate.Result, error)
}

// Available reports whether the session has a real generation backend.
func (s *Session) Available() bool {
	return s.gen.Available()
}

// writeContent builds a.Content in five ordered steps: outline,
// introduction, one section per "##" outline line, conclusion. Sections are
// generated one at a time in outline order.
func writeContent(ctx context.Context, g generator, a *types.Article, b types.ResearchBundle) error {
	a.Metadata.Quotes = append(a.Metadata.Quotes, b.Quotes...)

	if !g.Available() {
		a.Content = generate.Unavailable
		a.Degraded = true
		return nil
	}

	data := generate.PromptData{
		Topic:    a.Topic,
		Tone:     a.Tone,
		Keywords: b.Keywords,
		Quotes:   b.Quotes,
		News:     b.NewsTitles(),
	}

	outline, err := step(ctx, g, a, generate.OutlinePrompt(data))
	if err != nil {
		return err
	}
	a.Metadata.Outline = outline

	intro, err := step(ctx, g, a, generate.IntroductionPrompt(data))
	if err != nil {
		return err
	}
	a.Content += "# " + a.Topic + "\n\n" + intro + "\n\n"

	for _, title := range sectionTitles(outline) {
		d := data
		d.SectionTitle = title
		body, err := step(ctx, g, a, generate.SectionPrompt(d))
		if err != nil {
			return err
		}
		a.Content += "## " + title + "\n\n" + body + "\n\n"
	}

	conclusion, err := step(ctx, g, a, generate.ConclusionPrompt(data))
	if err != nil {
		return err
	}
	a.Content += "## Conclusion\n\n" + conclusion + "\n\n"
	return nil
}

// step runs one prompt and records degradation on a.
func step(ctx context.Context, g generator, a *types.Article, prompt string) (string, error) {
	r, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if r.Degraded {
		a.Degraded = true
	}
	return r.Text, nil
}

// sectionTitles returns the outline lines that start with "##" once
// leading whitespace is trimmed, with every "##" removed and the remainder
// trimmed.
func sectionTitles(outline string) []string {
	var titles []string
	for _, line := range strings.Split(outline, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "##") {
			continue
		}
		titles = append(titles, strings.TrimSpace(strings.ReplaceAll(line, "##", "")))
	}
	return titles
}
