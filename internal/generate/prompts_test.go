// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func TestPrompts(t *testing.T) {
	d := PromptData{
		Topic:        "container orchestration",
		Tone:         types.ToneTechnical,
		Keywords:     []string{"kubernetes", "scheduling"},
		Quotes:       []string{`"Q1" - A`, `"Q2" - B`},
		News:         []string{"K8s 2.0 ships", "Nomad adds GPUs"},
		SectionTitle: "Scheduling",
		Title:        "Container Orchestration Explained",
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"outline", OutlinePrompt(d),
			"Create a detailed outline for a blog about 'container orchestration', tone: technical. " +
				"Include relevant keywords: kubernetes, scheduling. Incorporate these quotes:\n" +
				"\"Q1\" - A\n\"Q2\" - B\nConsider recent news:\n- K8s 2.0 ships\n- Nomad adds GPUs"},
		{"introduction", IntroductionPrompt(d),
			"Write an engaging introduction for a blog about 'container orchestration', tone: technical. " +
				"Include some keywords: kubernetes, scheduling."},
		{"section", SectionPrompt(d),
			"Write a detailed section titled 'Scheduling' for a blog about 'container orchestration', tone: technical. " +
				"Include relevant keywords: kubernetes, scheduling. Incorporate a quote if relevant:\n\"Q1\" - A\n\"Q2\" - B"},
		{"conclusion", ConclusionPrompt(d),
			"Write a compelling conclusion for a blog about 'container orchestration', tone: technical. " +
				"Summarize key points and include a call to action."},
		{"title", TitlePrompt(d),
			"Create a concise, SEO-optimized title (60-70 characters) for a blog about: container orchestration"},
		{"description", DescriptionPrompt(d),
			"Write a meta description (150-160 characters) for a blog about: container orchestration"},
		{"keywords", KeywordsPrompt(d),
			"Generate 5-8 SEO keywords for a blog about: container orchestration"},
		{"slug", SlugPrompt(d),
			"Create a URL-friendly slug for a blog titled: Container Orchestration Explained"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestOutlinePromptWithEmptyResearch(t *testing.T) {
	got := OutlinePrompt(PromptData{Topic: "go", Tone: types.ToneEducational})
	assert.Equal(t, "Create a detailed outline for a blog about 'go', tone: educational. "+
		"Include relevant keywords: . Incorporate these quotes:\n\nConsider recent news:\n", got)
}
