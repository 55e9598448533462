// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// openaiAPIURL is the Chat Completions endpoint. Package-level var for
// test substitution.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

const (
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultOpenAISearchModel = "gpt-4o"
)

// OpenAI calls the OpenAI Chat Completions API. It has no hosted web
// search; search-style requests run on prompt text alone, with the larger
// model substituted for the search feature.
type OpenAI struct {
	apiKey      string
	model       string
	searchModel string
	maxTokens   int
	userAgent   string
	client      *http.Client
}

// NewOpenAI builds the client from configuration, filling defaults.
func NewOpenAI(cfg types.ProviderConfig) *OpenAI {
	model := cfg.Model
	searchModel := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
		searchModel = defaultOpenAISearchModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &OpenAI{
		apiKey:      cfg.OpenAIAPIKey,
		model:       model,
		searchModel: searchModel,
		maxTokens:   maxTokens,
		userAgent:   cfg.UserAgent,
		client:      httputil.NewClient(cfg.HTTPConfig),
	}
}

func (o *OpenAI) Name() string { return string(types.ProviderOpenAI) }

func (o *OpenAI) UsesWebSearch() bool { return false }

// openaiRequest is the Chat Completions request body.
type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openaiResponse is the Chat Completions response body.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SendChat sends one exchange to the Chat Completions API. The
// useWebSearch flag only selects the model: there is no hosted search.
func (o *OpenAI) SendChat(ctx context.Context, prompt string, useWebSearch bool) (string, error) {
	if o.apiKey == "" {
		return "", &AuthenticationError{Provider: o.Name(), Message: "no API key configured"}
	}

	model := o.model
	if useWebSearch {
		model = o.searchModel
	}
	reqBody := openaiRequest{
		Model:     model,
		Messages:  []openaiMessage{{Role: "user", Content: prompt}},
		MaxTokens: o.maxTokens,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}
	if o.userAgent != "" {
		headers["User-Agent"] = o.userAgent
	}

	status, body, err := httputil.PostJSON(ctx, o.client, openaiAPIURL, headers, reqBody)
	if err != nil {
		return "", &NetworkError{Provider: o.Name(), Err: err}
	}
	if status != http.StatusOK {
		return "", classifyStatus(o.Name(), status, body)
	}

	var resp openaiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &NetworkError{Provider: o.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return "", &NetworkError{Provider: o.Name(), Err: fmt.Errorf("response carried no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}
