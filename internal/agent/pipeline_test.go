// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// fakeGenerator answers prompts through a function and records them.
type fakeGenerator struct {
	unavailable bool
	reply       func(prompt string) generate.Result
	prompts     []string
}

func (f *fakeGenerator) Available() bool { return !f.unavailable }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (generate.Result, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply(prompt), nil
}

func outlineGenerator(outline string) *fakeGenerator {
	return &fakeGenerator{reply: func(p string) generate.Result {
		switch {
		case strings.HasPrefix(p, "Create a detailed outline"):
			return generate.Result{Text: outline}
		case strings.HasPrefix(p, "Write an engaging introduction"):
			return generate.Result{Text: "INTRO"}
		case strings.HasPrefix(p, "Write a compelling conclusion"):
			return generate.Result{Text: "END"}
		default:
			return generate.Result{Text: "BODY"}
		}
	}}
}

func newArticle(topic string) *types.Article {
	return &types.Article{Topic: topic, Tone: types.ToneEducational, Metadata: types.NewMetadata(topic)}
}

func TestWriteContentSectionCount(t *testing.T) {
	tests := []struct {
		name    string
		outline string
		titles  []string
	}{
		{"no headings", "1. Intro\n2. Body\n3. End", nil},
		{"one heading", "# Title\n## Only Section\ntext", []string{"Only Section"}},
		{"three headings", "##First\n  ##  Second  \nfiller\n## Third ##", []string{"First", "Second", "Third"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := outlineGenerator(tt.outline)
			a := newArticle("rust")
			require.NoError(t, writeContent(context.Background(), g, a, types.ResearchBundle{}))

			want := "# rust\n\nINTRO\n\n"
			for _, title := range tt.titles {
				want += "## " + title + "\n\nBODY\n\n"
			}
			want += "## Conclusion\n\nEND\n\n"
			assert.Equal(t, want, a.Content)
			assert.Equal(t, tt.outline, a.Metadata.Outline)
			assert.Len(t, g.prompts, 3+len(tt.titles))
			assert.False(t, a.Degraded)
		})
	}
}

func TestWriteContentSectionsInOutlineOrder(t *testing.T) {
	g := outlineGenerator("## C\n## A\n## B")
	a := newArticle("order")
	require.NoError(t, writeContent(context.Background(), g, a, types.ResearchBundle{}))

	var sectionPrompts []string
	for _, p := range g.prompts {
		if strings.HasPrefix(p, "Write a detailed section titled") {
			sectionPrompts = append(sectionPrompts, p[len("Write a detailed section titled '"):][:1])
		}
	}
	assert.Equal(t, []string{"C", "A", "B"}, sectionPrompts)
}

func TestWriteContentMarksDegraded(t *testing.T) {
	g := outlineGenerator("## A")
	inner := g.reply
	g.reply = func(p string) generate.Result {
		if strings.HasPrefix(p, "Write a detailed section") {
			return generate.Result{Text: generate.FailedPrefix + "quota", Degraded: true}
		}
		return inner(p)
	}

	a := newArticle("x")
	require.NoError(t, writeContent(context.Background(), g, a, types.ResearchBundle{}))
	assert.True(t, a.Degraded)
	assert.Contains(t, a.Content, "## A\n\nContent generation failed: quota\n\n")
	assert.True(t, strings.HasSuffix(a.Content, "## Conclusion\n\nEND\n\n"))
}

func TestWriteContentPlaceholderMode(t *testing.T) {
	g := &fakeGenerator{unavailable: true}
	a := newArticle("x")
	bundle := types.ResearchBundle{Quotes: []string{`"q" - a`}}
	require.NoError(t, writeContent(context.Background(), g, a, bundle))

	assert.Equal(t, generate.Unavailable, a.Content)
	assert.True(t, a.Degraded)
	assert.Empty(t, g.prompts)
	assert.Equal(t, []string{`"q" - a`}, a.Metadata.Quotes)
}

func TestSectionTitles(t *testing.T) {
	assert.Nil(t, sectionTitles(""))
	assert.Equal(t, []string{"A  B"}, sectionTitles("  ## A ## B  "))
	assert.Equal(t, []string{"# Deep"}, sectionTitles("### Deep"))
	assert.Nil(t, sectionTitles("text ## not a heading"))
}
