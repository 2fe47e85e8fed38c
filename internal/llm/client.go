// Package llm wraps vision-capable model providers behind a single client
// interface used by the page extractor.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const defaultMaxTokens = 4096

// Request is one vision completion call: a system instruction, a user
// prompt and a single PNG page image.
type Request struct {
	System   string
	Prompt   string
	ImagePNG []byte
}

// Client sends one page image plus prompt to a vision model and returns
// the raw text reply. Implementations must pin sampling to the most
// deterministic setting the provider offers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	APIKey    string
	Model     string // empty selects the provider default
	MaxTokens int
}

// New creates a vision client for the configured provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		return newOpenAIClient(cfg), nil
	case ProviderGemini:
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
