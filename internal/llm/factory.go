package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/mindscope/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// logging middleware. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, eventRepo, slog.Default()), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// a Provider. An explicit MINDSCOPE_LLM_PROVIDER with its MINDSCOPE_* key
// wins; otherwise the standard vendor key variables are probed. Returns
// ErrNotConfigured when no credential is found.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	explicit := os.Getenv("MINDSCOPE_LLM_PROVIDER") != ""

	if !cfg.hasKey() {
		if explicit {
			if err := cfg.Validate(); err != nil {
				return nil, cfg, fmt.Errorf("%w: %v", ErrNotConfigured, err)
			}
		}
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, ErrNotConfigured
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
