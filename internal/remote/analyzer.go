// Package remote asks a generative model for an assessment report and
// accepts only replies that satisfy the full result contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/llm"
)

// Purpose labels remote analysis requests in the LLM event log.
const Purpose = "assessment-report"

// Config tunes the request sent to the provider.
type Config struct {
	// RequestTimeout bounds a single call, independent of any caller
	// deadline, so an abandoned call cannot run forever.
	RequestTimeout time.Duration
	Temperature    float64
	MaxTokens      int
}

// DefaultConfig returns the standard request settings.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
		Temperature:    0.7,
		MaxTokens:      1024,
	}
}

// Analyzer produces reports through an llm.Provider.
type Analyzer struct {
	provider llm.Provider
	catalog  *assessment.Catalog
	cfg      Config
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfig replaces the request settings. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(a *Analyzer) {
		if cfg.RequestTimeout > 0 {
			a.cfg.RequestTimeout = cfg.RequestTimeout
		}
		if cfg.Temperature > 0 {
			a.cfg.Temperature = cfg.Temperature
		}
		if cfg.MaxTokens > 0 {
			a.cfg.MaxTokens = cfg.MaxTokens
		}
	}
}

// WithCatalog sets the catalog used to name the requested dimensions.
func WithCatalog(c *assessment.Catalog) Option {
	return func(a *Analyzer) { a.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an Analyzer. A nil provider yields an Analyzer whose calls
// fail with *ErrConfiguration.
func New(provider llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider: provider,
		catalog:  assessment.DefaultCatalog(),
		cfg:      DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze requests a report for topic. It returns either a complete Result
// or an error, never both. Failures are *ErrRemote or *ErrConfiguration.
func (a *Analyzer) Analyze(ctx context.Context, topic string, responses []assessment.Response) (*assessment.Result, error) {
	if a == nil || a.provider == nil {
		return nil, &ErrConfiguration{Err: errors.New("no LLM provider")}
	}

	prompt, err := renderPrompt(topic, responses, a.catalog.Resolve(topic).Dimensions)
	if err != nil {
		return nil, &ErrRemote{Stage: StageTransport, Err: fmt.Errorf("render prompt: %w", err)}
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, Purpose), a.cfg.RequestTimeout)
	defer cancel()

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      ResultSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return nil, classify(err)
	}
	if resp == nil {
		return nil, &ErrRemote{Stage: StageEmpty, Err: errors.New("no response")}
	}

	res, err := decodeResult(resp.Content)
	if err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "remote analysis accepted",
		"topic", topic, "model", resp.Model, "dimensions", len(res.Dimensions))
	return res, nil
}

// classify maps a provider error onto the analyzer's error kinds. A
// rejected credential will fail every call, so it is a configuration error.
func classify(err error) error {
	var (
		inv   *llm.ErrInvalidResponse
		trunc *llm.ErrMaxTokensExceeded
		auth  *llm.ErrUnauthorized
	)
	switch {
	case errors.As(err, &auth):
		return &ErrConfiguration{Err: err}
	case errors.As(err, &inv):
		return &ErrRemote{Stage: StageSchema, Err: err}
	case errors.As(err, &trunc):
		return &ErrRemote{Stage: StageDecode, Err: err}
	default:
		return &ErrRemote{Stage: StageTransport, Err: err}
	}
}

// decodeResult strips any code fence, checks the contract and decodes.
func decodeResult(raw json.RawMessage) (*assessment.Result, error) {
	content := llm.TrimCodeFence(raw)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &ErrRemote{Stage: StageEmpty, Err: errors.New("empty content")}
	}
	if !json.Valid(content) {
		return nil, &ErrRemote{Stage: StageDecode, Err: errors.New("content is not valid JSON")}
	}
	if err := llm.ValidateResponse(resultContract, content); err != nil {
		return nil, &ErrRemote{Stage: StageSchema, Err: err}
	}

	var res assessment.Result
	if err := json.Unmarshal(content, &res); err != nil {
		return nil, &ErrRemote{Stage: StageDecode, Err: err}
	}
	if !res.Complete() {
		return nil, &ErrRemote{Stage: StageSchema, Err: errors.New("incomplete result")}
	}
	return &res, nil
}
