package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)
	return p
}

func testSummarySchema() *Schema {
	return &Schema{
		Name:        "summary-only",
		Description: "a one-line report summary",
		Definition: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"summary": map[string]any{"type": "string"}},
			"required":             []any{"summary"},
			"additionalProperties": false,
		},
	}
}

// chatReply builds a chat.completion body with one choice.
func chatReply(message map[string]any, finish string) map[string]any {
	message["role"] = "assistant"
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{"index": 0, "message": message, "finish_reason": finish}},
		"usage":   map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func serveJSON(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		serveJSON(http.StatusOK, chatReply(map[string]any{"content": "```json\n{\"summary\":\"平衡\"}\n```"}, "stop"))(w, r)
	})

	req := analyzeRequest()
	req.Schema = testSummarySchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"summary":"平衡"}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "schema should be sent as response_format")
	assert.Equal(t, "json_schema", format["type"])
	schema := format["json_schema"].(map[string]any)
	assert.Equal(t, "summary-only", schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  any
	}{
		{
			name:    "schema violation",
			handler: serveJSON(http.StatusOK, chatReply(map[string]any{"content": `{"summary":42}`}, "stop")),
			target:  new(*ErrInvalidResponse),
		},
		{
			name:    "refusal",
			handler: serveJSON(http.StatusOK, chatReply(map[string]any{"content": "", "refusal": "I can't help with that."}, "stop")),
			target:  new(*ErrInvalidResponse),
		},
		{
			name:    "truncated",
			handler: serveJSON(http.StatusOK, chatReply(map[string]any{"content": `{"summary":"平`}, "length")),
			target:  new(*ErrMaxTokensExceeded),
		},
		{
			name: "rate limit",
			handler: serveJSON(http.StatusTooManyRequests, map[string]any{
				"error": map[string]any{"type": "tokens", "message": "Rate limit exceeded", "code": "rate_limit_exceeded"},
			}),
			target: new(*ErrRateLimit),
		},
		{
			name: "bad key",
			handler: serveJSON(http.StatusUnauthorized, map[string]any{
				"error": map[string]any{"type": "invalid_request_error", "message": "Incorrect API key provided", "code": "invalid_api_key"},
			}),
			target: new(*ErrUnauthorized),
		},
		{
			name: "server error",
			handler: serveJSON(http.StatusInternalServerError, map[string]any{
				"error": map[string]any{"type": "server_error", "message": "Internal server error"},
			}),
			target: new(*ErrProviderUnavailable),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, tt.handler)
			req := analyzeRequest()
			req.Schema = testSummarySchema()

			_, err := p.Generate(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T (%v)", err, err)
		})
	}
}

func TestOpenAIProvider_ModelMapping(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	p, err = NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "o4-mini"})
	require.NoError(t, err)
	assert.Equal(t, "o4-mini", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
}
