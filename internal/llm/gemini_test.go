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
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveModel(tt.input, geminiModels))
		})
	}
}

func TestBuildGeminiSchema_ReportShape(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "self-assessment report",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"band":    map[string]any{"type": "string", "enum": []any{"high", "mid", "low"}},
			"dimensions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"score": map[string]any{"type": "integer", "minimum": 0},
					},
					"required": []any{"name", "score"},
				},
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"summary", "dimensions", "strengths"},
	}

	schema := buildGeminiSchema(def)
	require.NotNil(t, schema)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, "self-assessment report", schema.Description)
	require.Len(t, schema.Properties, 4)
	assert.ElementsMatch(t, []string{"summary", "dimensions", "strengths"}, schema.Required)

	assert.Equal(t, genai.TypeString, schema.Properties["summary"].Type)
	assert.Equal(t, []string{"high", "mid", "low"}, schema.Properties["band"].Enum)

	dims := schema.Properties["dimensions"]
	require.Equal(t, genai.TypeArray, dims.Type)
	require.NotNil(t, dims.Items)
	assert.Equal(t, genai.TypeObject, dims.Items.Type)
	score := dims.Items.Properties["score"]
	assert.Equal(t, genai.TypeInteger, score.Type)
	require.NotNil(t, score.Minimum)
	assert.Equal(t, 0.0, *score.Minimum)
	assert.Nil(t, score.Maximum)
	assert.ElementsMatch(t, []string{"name", "score"}, dims.Items.Required)

	strengths := schema.Properties["strengths"]
	require.NotNil(t, strengths.Items)
	assert.Equal(t, genai.TypeString, strengths.Items.Type)
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL + "/",
	})
	require.NoError(t, err)
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 80,
			"totalTokenCount":      200,
		},
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"summary":"状态平衡"}`, "STOP"))
	})
	assert.Equal(t, "gemini-2.5-flash", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a psychological assessment analyst.",
		Messages:  []Message{{Role: RoleUser, Content: "Analyze the answers."}},
		Schema:    testSummarySchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"状态平衡"}`, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 80, TotalTokens: 200}, resp.Usage)
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"summary":"状`, "MAX_TOKENS"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Analyze the answers."}},
		MaxTokens: 8,
	})
	var trunc *ErrMaxTokensExceeded
	require.True(t, errors.As(err, &trunc), "got %T (%v)", err, err)
	assert.Equal(t, `{"summary":"状`, string(trunc.Content))
}

func TestGeminiProvider_RejectsEmptyRequest(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.5-flash"}
	_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
	assert.Error(t, err)
}
