// Package llm is a thin provider-neutral layer over the Anthropic, OpenAI,
// Gemini and OpenRouter SDKs. A Provider takes a prompt and an optional JSON
// Schema and returns JSON that already satisfies it.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Provider generates one structured reply per call.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// provider's native structured-output mode is used and Content is
	// validated before it is returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains and validates the reply. Without it
	// Content is whatever text the model produced, fence-trimmed.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// check rejects requests no provider could serve.
func (r Request) check() error {
	if len(r.Messages) == 0 {
		return errors.New("request has no messages")
	}
	if r.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", r.MaxTokens)
	}
	return nil
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is used as the OpenAI schema name and
// must be kebab-case, e.g. "assessment-result".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that actually served the call
	StopReason string // StopEnd or StopMaxTokens
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns raw model text into a Response for req: it trims any code
// fence, reports truncation and validates against req.Schema.
func finish(req Request, text string, resp Response) (*Response, error) {
	resp.Content = TrimCodeFence([]byte(text))
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if req.Schema != nil {
		if err := ValidateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
