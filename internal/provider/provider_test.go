// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/pkg/types"
)

func anthropicCfg(key string) types.ProviderConfig {
	return types.ProviderConfig{Provider: types.ProviderAnthropic, AnthropicAPIKey: key}
}

func openaiCfg(key string) types.ProviderConfig {
	return types.ProviderConfig{Provider: types.ProviderOpenAI, OpenAIAPIKey: key}
}

// --- Anthropic ---

func TestAnthropicSendChat(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{"content": []map[string]string{
			{"type": "text", "text": "first "},
			{"type": "tool_use", "text": "ignored"},
			{"type": "text", "text": "second"},
		}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	orig := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = orig }()

	c := NewAnthropic(anthropicCfg("sk-test"))
	text, err := c.SendChat(context.Background(), "find papers", true)
	require.NoError(t, err)

	assert.Equal(t, "first second", text, "text blocks should be concatenated, tool blocks skipped")
	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, defaultAnthropicModel, gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "find papers", gotReq.Messages[0].Content)
	require.Len(t, gotReq.Tools, 1, "web search tool should be attached")
	assert.Equal(t, "web_search_20250305", gotReq.Tools[0].Type)
}

func TestAnthropicNoWebSearchTool(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{{"type": "text", "text": "ok"}}})
	}))
	defer srv.Close()

	orig := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = orig }()

	c := NewAnthropic(anthropicCfg("k"))
	_, err := c.SendChat(context.Background(), "analyze", false)
	require.NoError(t, err)
	assert.Empty(t, gotReq.Tools)
}

func TestSendChatErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
	}{
		{
			name:   "401 is AuthenticationError",
			status: http.StatusUnauthorized,
			body:   `{"error": {"message": "invalid x-api-key"}}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				require.ErrorAs(t, err, &authErr)
				assert.Contains(t, authErr.Message, "invalid x-api-key", "provider message must survive verbatim")
			},
		},
		{
			name:   "403 is AuthenticationError",
			status: http.StatusForbidden,
			body:   "forbidden",
			check: func(t *testing.T, err error) {
				var authErr *AuthenticationError
				require.ErrorAs(t, err, &authErr)
			},
		},
		{
			name:   "429 is RateLimitError",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"message": "rate limit exceeded"}}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Contains(t, rateErr.Message, "rate limit exceeded")
			},
		},
		{
			name:   "500 is NetworkError",
			status: http.StatusInternalServerError,
			body:   "overloaded",
			check: func(t *testing.T, err error) {
				var netErr *NetworkError
				require.ErrorAs(t, err, &netErr)
				assert.Contains(t, netErr.Error(), "overloaded")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			orig := anthropicAPIURL
			anthropicAPIURL = srv.URL
			defer func() { anthropicAPIURL = orig }()

			c := NewAnthropic(anthropicCfg("k"))
			text, err := c.SendChat(context.Background(), "p", false)
			require.Error(t, err)
			assert.Empty(t, text, "no partial result on failure")
			tt.check(t, err)
		})
	}
}

func TestAnthropicTransportErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	orig := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = orig }()

	c := NewAnthropic(anthropicCfg("k"))
	_, err := c.SendChat(context.Background(), "p", false)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestAnthropicMissingKeyFailsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	orig := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = orig }()

	c := NewAnthropic(anthropicCfg(""))
	_, err := c.SendChat(context.Background(), "p", false)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, called, "missing key must not issue a request")
}

// --- OpenAI ---

func TestOpenAISendChat(t *testing.T) {
	var gotReq openaiRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "the answer"}}},
		})
	}))
	defer srv.Close()

	orig := openaiAPIURL
	openaiAPIURL = srv.URL
	defer func() { openaiAPIURL = orig }()

	c := NewOpenAI(openaiCfg("sk-oai"))
	text, err := c.SendChat(context.Background(), "question", false)
	require.NoError(t, err)

	assert.Equal(t, "the answer", text)
	assert.Equal(t, "Bearer sk-oai", gotAuth)
	assert.Equal(t, defaultOpenAIModel, gotReq.Model)
}

func TestOpenAIWebSearchFlagSelectsLargerModel(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "x"}}},
		})
	}))
	defer srv.Close()

	orig := openaiAPIURL
	openaiAPIURL = srv.URL
	defer func() { openaiAPIURL = orig }()

	c := NewOpenAI(openaiCfg("k"))
	c.SendChat(context.Background(), "p", true)
	c.SendChat(context.Background(), "p", false)

	require.Len(t, models, 2)
	assert.Equal(t, defaultOpenAISearchModel, models[0])
	assert.Equal(t, defaultOpenAIModel, models[1])
	assert.False(t, c.UsesWebSearch(), "openai has no hosted web search")
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	orig := openaiAPIURL
	openaiAPIURL = srv.URL
	defer func() { openaiAPIURL = orig }()

	c := NewOpenAI(openaiCfg("k"))
	_, err := c.SendChat(context.Background(), "p", false)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

// --- Select ---

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.ProviderConfig
		wantName string
		wantErr  string
	}{
		{
			name:     "explicit anthropic",
			cfg:      anthropicCfg("k"),
			wantName: "anthropic",
		},
		{
			name:     "explicit openai",
			cfg:      openaiCfg("k"),
			wantName: "openai",
		},
		{
			name:    "explicit anthropic without key",
			cfg:     types.ProviderConfig{Provider: types.ProviderAnthropic},
			wantErr: "no API key",
		},
		{
			name:     "default prefers anthropic when both keys set",
			cfg:      types.ProviderConfig{AnthropicAPIKey: "a", OpenAIAPIKey: "b"},
			wantName: "anthropic",
		},
		{
			name:     "default falls back to openai",
			cfg:      types.ProviderConfig{OpenAIAPIKey: "b"},
			wantName: "openai",
		},
		{
			name:    "no keys at all",
			cfg:     types.ProviderConfig{},
			wantErr: "no API key configured",
		},
		{
			name:    "unknown provider",
			cfg:     types.ProviderConfig{Provider: "gemini"},
			wantErr: "unknown provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Select(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := &NetworkError{Provider: "anthropic", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("NetworkError should unwrap to the transport error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q", err.Error())
	}
}
