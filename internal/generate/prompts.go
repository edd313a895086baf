// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// PromptData is the input to every prompt template. Lists are joined by
// the template helpers; fields a template does not reference are ignored.
type PromptData struct {
	Topic        string
	Tone         types.Tone
	Keywords     []string
	Quotes       []string
	News         []string
	SectionTitle string
	Title        string
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
	"bullets": func(items []string) string {
		lines := make([]string, len(items))
		for i, it := range items {
			lines[i] = "- " + it
		}
		return strings.Join(lines, "\n")
	},
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(promptFuncs).Parse(text))
}

// Pipeline prompts, in the order the pipeline issues them.
var (
	outlinePrompt = mustPrompt("outline", `Create a detailed outline for a blog about '{{.Topic}}', tone: {{.Tone}}. Include relevant keywords: {{join .Keywords ", "}}. Incorporate these quotes:
{{join .Quotes "\n"}}
Consider recent news:
{{bullets .News}}`)

	introductionPrompt = mustPrompt("introduction", `Write an engaging introduction for a blog about '{{.Topic}}', tone: {{.Tone}}. Include some keywords: {{join .Keywords ", "}}.`)

	sectionPrompt = mustPrompt("section", `Write a detailed section titled '{{.SectionTitle}}' for a blog about '{{.Topic}}', tone: {{.Tone}}. Include relevant keywords: {{join .Keywords ", "}}. Incorporate a quote if relevant:
{{join .Quotes "\n"}}`)

	conclusionPrompt = mustPrompt("conclusion", `Write a compelling conclusion for a blog about '{{.Topic}}', tone: {{.Tone}}. Summarize key points and include a call to action.`)
)

// SEO prompts.
var (
	titlePrompt       = mustPrompt("title", `Create a concise, SEO-optimized title (60-70 characters) for a blog about: {{.Topic}}`)
	descriptionPrompt = mustPrompt("description", `Write a meta description (150-160 characters) for a blog about: {{.Topic}}`)
	keywordsPrompt    = mustPrompt("keywords", `Generate 5-8 SEO keywords for a blog about: {{.Topic}}`)
	slugPrompt        = mustPrompt("slug", `Create a URL-friendly slug for a blog titled: {{.Title}}`)
)

func render(t *template.Template, d PromptData) string {
	var buf bytes.Buffer
	// Templates are fixed and PromptData has every referenced field, so
	// Execute cannot fail.
	if err := t.Execute(&buf, d); err != nil {
		panic(err)
	}
	return buf.String()
}

// OutlinePrompt asks for an outline whose "##" lines become sections.
func OutlinePrompt(d PromptData) string { return render(outlinePrompt, d) }

// IntroductionPrompt asks for the article introduction.
func IntroductionPrompt(d PromptData) string { return render(introductionPrompt, d) }

// SectionPrompt asks for the body of the section named d.SectionTitle.
func SectionPrompt(d PromptData) string { return render(sectionPrompt, d) }

// ConclusionPrompt asks for the closing section.
func ConclusionPrompt(d PromptData) string { return render(conclusionPrompt, d) }

// TitlePrompt asks for an SEO title.
func TitlePrompt(d PromptData) string { return render(titlePrompt, d) }

// DescriptionPrompt asks for a meta description.
func DescriptionPrompt(d PromptData) string { return render(descriptionPrompt, d) }

// KeywordsPrompt asks for a comma-separated keyword list.
func KeywordsPrompt(d PromptData) string { return render(keywordsPrompt, d) }

// SlugPrompt asks for a slug for d.Title.
func SlugPrompt(d PromptData) string { return render(slugPrompt, d) }
