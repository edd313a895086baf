// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func sampleArticle() *types.Article {
	return &types.Article{
		ID:      "a1",
		Topic:   "container orchestration",
		Tone:    types.ToneTechnical,
		Content: "# container orchestration\n\nIntro <b>text</b>.\n\n## Conclusion\n\nDone.\n\n",
		Metadata: types.Metadata{
			Slug:        "container-orchestration",
			Keywords:    []string{"kubernetes", "containers"},
			Quotes:      []string{`"Automate." - Anon`},
			Title:       "Containers & You",
			Description: "A short guide.",
			ReadingTime: 2,
			Outline:     "## Conclusion",
		},
	}
}

var stamp = time.Date(2026, 10, 19, 8, 5, 9, 0, time.UTC)

func TestWriteMarkdownAndJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blog_output")
	a := sampleArticle()

	files, err := Write(a, types.OutputConfig{Dir: dir}, stamp)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "container-orchestration_20261019_080509.md"), files.Markdown)
	assert.Equal(t, filepath.Join(dir, "container-orchestration_20261019_080509.json"), files.JSON)
	assert.Empty(t, files.YAML)
	assert.Empty(t, files.HTML)
	assert.Len(t, files.All(), 2)

	md, err := os.ReadFile(files.Markdown)
	require.NoError(t, err)
	assert.Equal(t, a.Content, string(md))

	raw, err := os.ReadFile(files.JSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"slug\""), "metadata JSON is indented")

	var got types.Metadata
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, a.Metadata, got)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "reading_time")
}

func TestWriteOptionalFormats(t *testing.T) {
	dir := t.TempDir()
	a := sampleArticle()

	files, err := Write(a, types.OutputConfig{Dir: dir, YAML: true, HTML: true}, stamp)
	require.NoError(t, err)
	assert.Len(t, files.All(), 4)

	raw, err := os.ReadFile(files.YAML)
	require.NoError(t, err)
	var got types.Metadata
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, a.Metadata, got)

	page, err := os.ReadFile(files.HTML)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<title>Containers &amp; You</title>")
	assert.Contains(t, html, `<meta name="description" content="A short guide.">`)
	assert.Contains(t, html, `<meta name="keywords" content="kubernetes, containers">`)
	assert.Contains(t, html, "<h1>container orchestration</h1>")
	assert.Contains(t, html, "<h2>Conclusion</h2>")
	assert.NotContains(t, html, "<b>text</b>", "raw HTML in generated content is not passed through")
}

func TestWriteKeepsFilesInsideOutputDir(t *testing.T) {
	for _, slug := range []string{"tcp/ip-basics", "../x", "../../escape", ""} {
		t.Run(slug, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			a := sampleArticle()
			a.Metadata.Slug = slug

			files, err := Write(a, types.OutputConfig{Dir: dir, YAML: true, HTML: true}, stamp)
			require.NoError(t, err)
			for _, f := range files.All() {
				assert.Equal(t, dir, filepath.Dir(f), f)
				_, err := os.Stat(f)
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	a := sampleArticle()
	assert.Equal(t, "container-orchestration_20261019_080509", BaseName(a, stamp))

	a.Metadata.Slug = "../x"
	assert.Equal(t, "x_20261019_080509", BaseName(a, stamp))

	a.Metadata.Slug = "/"
	assert.Equal(t, "article_20261019_080509", BaseName(a, stamp))
}

func TestWriteFailsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := Write(sampleArticle(), types.OutputConfig{Dir: file}, stamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, sampleArticle())

	rule := strings.Repeat("=", 40)
	want := "\nBlog Generation Complete!\n" + rule + "\n" +
		"Title: Containers & You\n" +
		"Description: A short guide.\n" +
		"Slug: container-orchestration\n" +
		"Reading Time: 2 min\n" +
		"Keywords: kubernetes, containers\n" +
		rule + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSummaryFlagsDegraded(t *testing.T) {
	a := sampleArticle()
	a.Degraded = true
	var buf bytes.Buffer
	Summary(&buf, a)
	assert.Contains(t, buf.String(), "Warning: some content could not be generated")
}
