// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTone(t *testing.T) {
	tests := []struct {
		in   string
		want Tone
	}{
		{"educational", ToneEducational},
		{"formal", ToneFormal},
		{"creative", ToneCreative},
		{"technical", ToneTechnical},
		{"  Technical ", ToneTechnical},
		{"", ToneEducational},
		{"sarcastic", ToneEducational},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTone(tt.in))
		})
	}
}

func TestRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantTopic string
		wantTone  Tone
		wantErr   bool
	}{
		{"plain", Request{Topic: "go generics", Tone: "formal"}, "go generics", ToneFormal, false},
		{"trims topic", Request{Topic: "  go generics \n"}, "go generics", ToneEducational, false},
		{"unknown tone", Request{Topic: "x", Tone: "angry"}, "x", ToneEducational, false},
		{"empty topic", Request{Topic: ""}, "", "", true},
		{"whitespace topic", Request{Topic: " \t\n "}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, tone, err := tt.req.Normalize()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrEmptyTopic))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopic, topic)
			assert.Equal(t, tt.wantTone, tone)
		})
	}
}

func TestDefaultSlug(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Container Orchestration", "container-orchestration"},
		{`Rust's "borrow" checker, explained.`, "rusts-borrow-checker-explained"},
		{strings.Repeat("ab ", 30), strings.Repeat("ab-", 16) + "ab"},
		{"TCP/IP basics", "tcp-ip-basics"},
		{"../../escape", "escape"},
		{`C:\temp -- a  b`, "c-temp-a-b"},
		{"Café culture", "café-culture"},
		{strings.Repeat("a", 49) + " b", strings.Repeat("a", 49)},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			got := DefaultSlug(tt.topic)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 50)
			assert.NotContains(t, got, "/")
			assert.False(t, strings.HasSuffix(got, "-"))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" -Hello World- ", "hello-world"},
		{"../x", "x"},
		{"a/../../b", "a-b"},
		{"Node.js & Go", "nodejs-go"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("Edge Computing")
	assert.Equal(t, "edge-computing", m.Slug)
	assert.Equal(t, 1, m.ReadingTime)
	assert.Empty(t, m.Title)
	assert.Empty(t, m.Description)
	assert.NotNil(t, m.Keywords)
	assert.Empty(t, m.Keywords)
}

func TestArticleResponse(t *testing.T) {
	a := &Article{
		Content: "# T\n\nbody\n\n",
		Metadata: Metadata{
			Title:       "Title",
			Description: "Desc",
			ReadingTime: 4,
			Slug:        "t",
		},
	}
	data, err := json.Marshal(a.Response())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"content": "# T\n\nbody\n\n",
		"metadata": {
			"title": "Title",
			"description": "Desc",
			"tags": [],
			"readingTime": "4 min read",
			"slug": "t"
		}
	}`, string(data))
}

func TestResearchBundleNewsTitles(t *testing.T) {
	b := ResearchBundle{News: []NewsItem{{Title: "a"}, {Title: "b"}}}
	assert.Equal(t, []string{"a", "b"}, b.NewsTitles())
	assert.Empty(t, ResearchBundle{}.NewsTitles())
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, ProviderGemini, c.Generation.Provider)
	assert.Equal(t, DefaultModel, c.Generation.Model)
	assert.Equal(t, 3, c.Generation.MaxAttempts)
	assert.False(t, c.HTTP.InsecureSkipVerify)
	assert.Equal(t, []string{"http://localhost:3000"}, c.Server.AllowedOrigins)
	assert.Equal(t, DefaultCacheTTL, c.Cache.TTL)
}
