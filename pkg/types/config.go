// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProviderName identifies a supported chat provider.
type ProviderName string

const (
	ProviderAnthropic ProviderName = "anthropic"
	ProviderOpenAI    ProviderName = "openai"
)

// HTTPConfig holds shared HTTP settings for outbound provider requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. A timed-out call surfaces as a
	// network error rather than hanging.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for the chat provider client.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the chat provider: anthropic or openai. Empty means
	// pick whichever provider has an API key configured, preferring anthropic.
	Provider ProviderName `json:"provider" yaml:"provider"`

	// Model is the model identifier. Empty uses the provider default.
	Model string `json:"model" yaml:"model"`

	// AnthropicAPIKey authenticates against the Anthropic Messages API.
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`

	// OpenAIAPIKey authenticates against the OpenAI Chat Completions API.
	OpenAIAPIKey string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`

	// MaxTokens caps the provider completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// StoreConfig holds settings for the paper store loader.
type StoreConfig struct {
	// PapersDir is the default folder scanned for PDF files.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`

	// MaxPages caps how many pages are extracted per PDF (default 30).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Parallelism bounds concurrent PDF extraction during a folder load
	// (default 4). Sequential when set to 1.
	Parallelism int `json:"parallelism" yaml:"parallelism"`
}

// PromptConfig holds the size limits applied when assembling prompts that
// carry paper text. The limits keep the combined request inside the
// provider's context window.
type PromptConfig struct {
	// PerPaperChars is the per-paper character cap; longer paper text is
	// tail-truncated (default 40000).
	PerPaperChars int `json:"per_paper_chars" yaml:"per_paper_chars"`

	// TotalBudget is the maximum length of an assembled prompt in
	// characters (default 400000). Papers are dropped newest-first when the
	// assembly would exceed it.
	TotalBudget int `json:"total_budget" yaml:"total_budget"`

	// MaxPapers caps how many papers are attached to a single request
	// (default 10).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// AgentConfig groups all configuration for the research agent.
type AgentConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Prompt   PromptConfig   `json:"prompt" yaml:"prompt"`
}
