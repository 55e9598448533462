// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// anthropicAPIURL is the Messages API endpoint. Package-level var for
// test substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

const (
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultMaxTokens      = 4096
)

// Anthropic calls the Anthropic Messages API. It is the only supported
// provider with hosted web search.
type Anthropic struct {
	apiKey    string
	model     string
	maxTokens int
	userAgent string
	client    *http.Client
}

// NewAnthropic builds the client from configuration, filling defaults.
func NewAnthropic(cfg types.ProviderConfig) *Anthropic {
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Anthropic{
		apiKey:    cfg.AnthropicAPIKey,
		model:     model,
		maxTokens: maxTokens,
		userAgent: cfg.UserAgent,
		client:    httputil.NewClient(cfg.HTTPConfig),
	}
}

func (a *Anthropic) Name() string { return string(types.ProviderAnthropic) }

func (a *Anthropic) UsesWebSearch() bool { return true }

// anthropicRequest is the Messages API request body.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// anthropicResponse is the Messages API response body. Only text blocks
// are consumed; tool-use blocks from a web search are skipped.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// SendChat sends one exchange to the Messages API. With useWebSearch the
// hosted web-search tool is offered to the model.
func (a *Anthropic) SendChat(ctx context.Context, prompt string, useWebSearch bool) (string, error) {
	if a.apiKey == "" {
		return "", &AuthenticationError{Provider: a.Name(), Message: "no API key configured"}
	}

	reqBody := anthropicRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}
	if useWebSearch {
		reqBody.Tools = []anthropicTool{{Type: "web_search_20250305", Name: "web_search"}}
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}
	if a.userAgent != "" {
		headers["User-Agent"] = a.userAgent
	}

	status, body, err := httputil.PostJSON(ctx, a.client, anthropicAPIURL, headers, reqBody)
	if err != nil {
		return "", &NetworkError{Provider: a.Name(), Err: err}
	}
	if status != http.StatusOK {
		return "", classifyStatus(a.Name(), status, body)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &NetworkError{Provider: a.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", &NetworkError{Provider: a.Name(), Err: fmt.Errorf("response carried no text content")}
	}
	return b.String(), nil
}
