package llm

import (
	"fmt"
	"strings"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	workersAIBaseURLFormat   = "https://api.cloudflare.com/client/v4/accounts/%s/ai/v1"
)

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// endpoint. Model IDs are passed through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	inner := newOpenAICompatible(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL}, nil)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// WorkersAIProvider runs models on Cloudflare Workers AI via the
// account-scoped OpenAI-compatible endpoint.
type WorkersAIProvider struct {
	*OpenAIProvider
	accountID string
}

// NewWorkersAIProvider needs an API token and, unless BaseURL is set, the
// account ID the endpoint is scoped to.
func NewWorkersAIProvider(cfg WorkersAIConfig) (*WorkersAIProvider, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("workers AI API token is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if strings.TrimSpace(cfg.AccountID) == "" {
			return nil, fmt.Errorf("workers AI account ID is required")
		}
		baseURL = WorkersAIBaseURL(cfg.AccountID)
	}
	inner := newOpenAICompatible(OpenAIConfig{APIKey: cfg.APIToken, Model: cfg.Model, BaseURL: baseURL}, nil)
	return &WorkersAIProvider{OpenAIProvider: inner, accountID: cfg.AccountID}, nil
}

// WorkersAIBaseURL returns the OpenAI-compatible endpoint for an account.
func WorkersAIBaseURL(accountID string) string {
	return fmt.Sprintf(workersAIBaseURLFormat, strings.TrimSpace(accountID))
}
