// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates text through the chat completions API, or any gateway
// that speaks it when baseURL is set.
type OpenAI struct {
	Model  string
	client openai.Client
}

// NewOpenAI builds an OpenAI backend on the session HTTP client. The SDK's
// own retries are disabled; Client.Generate owns the retry policy.
func NewOpenAI(apiKey, model, baseURL string, httpClient *http.Client) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
		oaoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, oaoption.WithHTTPClient(httpClient))
	}
	return &OpenAI{Model: model, client: openai.NewClient(opts...)}
}

// Generate sends prompt as a single user message.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI API returned empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
