package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o"

// openAIClient talks to the OpenAI chat completions API with an inline
// base64 page image.
type openAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func newOpenAIClient(cfg Config) *openAIClient {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openAIClient{
		client:    openai.NewClient(cfg.APIKey),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.ImagePNG)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		// The client omits a zero temperature, which the API reads as the
		// default of 1. The smallest non-zero float is sent verbatim and
		// pins sampling to its most deterministic setting.
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: req.Prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
