package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/cfdroid/internal/store"
)

// NewProvider builds the provider named by cfg.Provider and wraps it so
// that every attempt is recorded and transient failures are retried.
// The "mock" provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	base, err := vendorProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llm %s: %w", cfg.Provider, err)
	}
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry), nil
}

func vendorProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "workers-ai":
		return NewWorkersAIProvider(cfg.WorkersAI)
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}
