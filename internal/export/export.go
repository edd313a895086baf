// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes finished articles to disk and prints the console
// summary shown after a CLI run.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const (
	timestampLayout = "20060102_150405"
	fallbackName    = "article"
)

// Files lists the paths written by Write. Optional outputs that were not
// requested are left empty.
type Files struct {
	Markdown string
	JSON     string
	YAML     string
	HTML     string
}

// All returns the non-empty paths in write order.
func (f Files) All() []string {
	var out []string
	for _, p := range []string{f.Markdown, f.JSON, f.YAML, f.HTML} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BaseName is the file name shared by every output of a, without
// extension: "{slug}_{YYYYmmdd_HHMMSS}". The slug is re-slugified so the
// name always stays inside the output directory.
func BaseName(a *types.Article, at time.Time) string {
	slug := types.Slugify(a.Metadata.Slug)
	if slug == "" {
		slug = fallbackName
	}
	return slug + "_" + at.Format(timestampLayout)
}

// Write exports a into cfg.Dir: the content as .md and the metadata as
// indented .json, plus .yaml and .html when cfg asks for them. at stamps
// the file names.
func Write(a *types.Article, cfg types.OutputConfig, at time.Time) (Files, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("creating output directory: %w", err)
	}

	base := filepath.Join(dir, BaseName(a, at))
	var files Files

	files.Markdown = base + ".md"
	if err := os.WriteFile(files.Markdown, []byte(a.Content), 0o644); err != nil {
		return files, fmt.Errorf("writing markdown: %w", err)
	}

	data, err := json.MarshalIndent(a.Metadata, "", "  ")
	if err != nil {
		return files, fmt.Errorf("marshaling JSON: %w", err)
	}
	files.JSON = base + ".json"
	if err := os.WriteFile(files.JSON, data, 0o644); err != nil {
		return files, fmt.Errorf("writing metadata: %w", err)
	}

	if cfg.YAML {
		data, err := yaml.Marshal(a.Metadata)
		if err != nil {
			return files, fmt.Errorf("marshaling YAML: %w", err)
		}
		files.YAML = base + ".yaml"
		if err := os.WriteFile(files.YAML, data, 0o644); err != nil {
			return files, fmt.Errorf("writing YAML metadata: %w", err)
		}
	}

	if cfg.HTML {
		page, err := RenderHTML(a)
		if err != nil {
			return files, err
		}
		files.HTML = base + ".html"
		if err := os.WriteFile(files.HTML, page, 0o644); err != nil {
			return files, fmt.Errorf("writing HTML: %w", err)
		}
	}

	return files, nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
{{- if .Keywords}}
<meta name="keywords" content="{{.Keywords}}">
{{- end}}
</head>
<body>
<article>
{{.Body}}</article>
</body>
</html>
`))

// RenderHTML renders the article body from Markdown and wraps it in a
// standalone page carrying the SEO metadata.
func RenderHTML(a *types.Article) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(a.Content), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	var page bytes.Buffer
	err := pageTmpl.Execute(&page, struct {
		Title       string
		Description string
		Keywords    string
		Body        template.HTML
	}{
		Title:       a.Metadata.Title,
		Description: a.Metadata.Description,
		Keywords:    strings.Join(a.Metadata.Keywords, ", "),
		Body:        template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return page.Bytes(), nil
}

// Summary prints the completion report for a.
func Summary(w io.Writer, a *types.Article) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(w, "\nBlog Generation Complete!")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Title: %s\n", a.Metadata.Title)
	fmt.Fprintf(w, "Description: %s\n", a.Metadata.Description)
	fmt.Fprintf(w, "Slug: %s\n", a.Metadata.Slug)
	fmt.Fprintf(w, "Reading Time: %d min\n", a.Metadata.ReadingTime)
	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(a.Metadata.Keywords, ", "))
	if a.Degraded {
		fmt.Fprintln(w, "Warning: some content could not be generated")
	}
	fmt.Fprintln(w, rule)
}
