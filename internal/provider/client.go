// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider adapts the supported hosted chat services behind one
// capability interface. Each exchange is stateless: the full prompt is
// sent and a single text response comes back. The two implementations
// differ only in endpoint, authentication header, and whether a hosted
// web-search capability can be enabled.
package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Client sends one chat exchange to a hosted provider.
type Client interface {
	// Name returns the provider identifier for logs and error messages.
	Name() string

	// UsesWebSearch reports whether the provider can run a hosted web
	// search during the exchange. A provider without the capability
	// still accepts the flag and answers from prompt text alone.
	UsesWebSearch() bool

	// SendChat sends the prompt and returns the response text. Failures
	// are *AuthenticationError, *RateLimitError, or *NetworkError, with
	// the provider message preserved verbatim.
	SendChat(ctx context.Context, prompt string, useWebSearch bool) (string, error)
}

// Select builds the configured provider client. When cfg.Provider is
// empty, whichever provider has an API key wins, preferring Anthropic.
// No key anywhere is a startup failure.
func Select(cfg types.ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case types.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("provider anthropic selected but no API key configured (set ANTHROPIC_API_KEY or .secrets/anthropic-api-key)")
		}
		return NewAnthropic(cfg), nil
	case types.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("provider openai selected but no API key configured (set OPENAI_API_KEY or .secrets/openai-api-key)")
		}
		return NewOpenAI(cfg), nil
	case "":
		if cfg.AnthropicAPIKey != "" {
			return NewAnthropic(cfg), nil
		}
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAI(cfg), nil
		}
		return nil, fmt.Errorf("no API key configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY, or add a key file under .secrets/")
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}
