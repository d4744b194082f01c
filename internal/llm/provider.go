// Package llm provides the optional language-model backends used for
// contract translation and plain-language clause notes. A provider is
// selected once at startup; with none configured the rest of the system
// runs fully offline.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider is a minimal chat-completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
	Available(ctx context.Context) bool
}

// Config selects and parameterizes a provider.
type Config struct {
	// Provider is "anthropic", "openai", "auto" or "off".
	Provider string

	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string

	// BaseURL overrides the Anthropic endpoint, mainly for tests.
	BaseURL string

	Timeout time.Duration
}

// NewProvider builds the configured provider. "auto" prefers Anthropic
// and falls back to OpenAI depending on which key is present; "auto"
// without keys and "off" return nil with no error.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "anthropic", "claude":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic provider selected but ANTHROPIC_API_KEY is empty")
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.BaseURL, cfg.Timeout), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is empty")
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil

	case "auto":
		if cfg.AnthropicAPIKey != "" {
			return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.BaseURL, cfg.Timeout), nil
		}
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
		}
		return nil, nil

	case "", "off", "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown llm provider: %s (supported: anthropic, openai, auto, off)", cfg.Provider)
}
