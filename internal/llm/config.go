package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config selects and configures one provider. Defaults live in the
// envDefault tags; every variable carries the CFDROID_ prefix.
type Config struct {
	// anthropic, openai, gemini, openrouter, workers-ai or mock
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	WorkersAI  WorkersAIConfig  `envPrefix:"WORKERS_AI_"`
	Retry      RetryConfig      `envPrefix:"LLM_RETRY_"`

	// Timeout bounds one assistant reply, retries included.
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	MaxTokens int           `env:"LLM_MAX_TOKENS" envDefault:"1024"`
}

type AnthropicConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"claude-haiku"`
	BaseURL string `env:"BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-flash"`
	BaseURL string `env:"BASE_URL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"` // empty means openrouter.ai
}

// WorkersAIConfig needs either AccountID or a BaseURL such as an AI
// Gateway endpoint.
type WorkersAIConfig struct {
	APIToken  string `env:"API_TOKEN"`
	AccountID string `env:"ACCOUNT_ID"`
	Model     string `env:"MODEL" envDefault:"@cf/meta/llama-3.1-8b-instruct"`
	BaseURL   string `env:"BASE_URL"`
}

type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig is the config an empty environment produces.
func DefaultConfig() Config {
	var cfg Config
	if err := env.Parse(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("llm: bad envDefault tag: %v", err))
	}
	return cfg
}

func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, env.Options{Prefix: "CFDROID_"}); err != nil {
		return Config{}, fmt.Errorf("llm config: %w", err)
	}
	return cfg, nil
}

// vendorKeys are the variables the vendors' own tooling uses, checked in
// order by DiscoverConfig.
var vendorKeys = []struct {
	provider string
	vars     []string
	apply    func(*Config, []string)
}{
	{"anthropic", []string{"ANTHROPIC_API_KEY"}, func(c *Config, v []string) { c.Anthropic.APIKey = v[0] }},
	{"openai", []string{"OPENAI_API_KEY"}, func(c *Config, v []string) { c.OpenAI.APIKey = v[0] }},
	{"gemini", []string{"GEMINI_API_KEY"}, func(c *Config, v []string) { c.Gemini.APIKey = v[0] }},
	{"openrouter", []string{"OPENROUTER_API_KEY"}, func(c *Config, v []string) { c.OpenRouter.APIKey = v[0] }},
	{"workers-ai", []string{"CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ACCOUNT_ID"}, func(c *Config, v []string) {
		c.WorkersAI.APIToken, c.WorkersAI.AccountID = v[0], v[1]
	}},
}

// DiscoverConfig returns a default config for the first vendor whose
// variables are all set.
func DiscoverConfig() (Config, bool) {
next:
	for _, vk := range vendorKeys {
		vals := make([]string, len(vk.vars))
		for i, name := range vk.vars {
			if vals[i] = os.Getenv(name); vals[i] == "" {
				continue next
			}
		}
		cfg := DefaultConfig()
		cfg.Provider = vk.provider
		vk.apply(&cfg, vals)
		return cfg, true
	}
	return Config{}, false
}

// Resolve prefers an explicit, valid CFDROID_ configuration and falls back
// to DiscoverConfig. The explicit config's validation error is returned
// when neither works.
func Resolve() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	verr := cfg.Validate()
	if verr == nil {
		return cfg, nil
	}
	if found, ok := DiscoverConfig(); ok {
		return found, nil
	}
	return Config{}, verr
}

// Validate reports the first missing credential for the chosen provider.
func (c Config) Validate() error {
	missing := func(v string) error {
		return fmt.Errorf("%s is required for the %s provider", v, c.Provider)
	}
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing("CFDROID_ANTHROPIC_API_KEY")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing("CFDROID_OPENAI_API_KEY")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing("CFDROID_GEMINI_API_KEY")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missing("CFDROID_OPENROUTER_API_KEY")
		}
	case "workers-ai":
		if c.WorkersAI.APIToken == "" {
			return missing("CFDROID_WORKERS_AI_API_TOKEN")
		}
		if c.WorkersAI.AccountID == "" && c.WorkersAI.BaseURL == "" {
			return missing("CFDROID_WORKERS_AI_ACCOUNT_ID (or _BASE_URL)")
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	return nil
}
