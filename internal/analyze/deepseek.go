// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultBaseURL is the DeepSeek OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.deepseek.com/v1"

const defaultModel = "deepseek-chat"

// DeepSeekBackend sends single-turn chat completions to an
// OpenAI-protocol endpoint. The PDF travels as a base64 file part; it
// is not parsed or validated on this side.
type DeepSeekBackend struct {
	client openai.Client
	model  string
}

// NewDeepSeekBackend builds a backend from cfg, filling in the default
// endpoint and model when unset.
func NewDeepSeekBackend(cfg types.AnalysisConfig) *DeepSeekBackend {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &DeepSeekBackend{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

// Complete issues one chat completion: the system instruction plus a
// single user message carrying the prompt text and the attached PDF.
func (b *DeepSeekBackend) Complete(ctx context.Context, system, prompt string, pdf []byte) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
	}
	if len(pdf) > 0 {
		parts = append(parts, openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String("data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)),
			Filename: openai.String("paper.pdf"),
		}))
	}

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
