package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_Queue(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "Workers run at the edge.", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "R2 stores objects."},
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.Equal(t, "Workers run at the edge.", first.Text)
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	require.NoError(t, err)
	assert.Equal(t, "R2 stores objects.", second.Text)

	_, err = mock.Generate(ctx, Request{})
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down, "drained queue")

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestMockProvider_Stream(t *testing.T) {
	t.Run("chunks", func(t *testing.T) {
		mock := NewMockProvider(MockResponse{Chunks: []string{"KV is ", "eventually ", "consistent."}})
		var got []string
		resp, err := mock.Stream(context.Background(), Request{}, func(c string) { got = append(got, c) })
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, "KV is eventually consistent.", resp.Text)
	})

	t.Run("interrupted", func(t *testing.T) {
		mock := NewMockProvider(MockResponse{Chunks: []string{"partial"}, Err: errors.New("reset")})
		var got strings.Builder
		_, err := mock.Stream(context.Background(), Request{}, func(c string) { got.WriteString(c) })

		var broke *ErrStreamInterrupted
		require.ErrorAs(t, err, &broke)
		assert.Equal(t, 1, broke.Delivered)
		assert.Equal(t, "partial", got.String())
	})

	t.Run("text as one chunk", func(t *testing.T) {
		mock := NewMockProvider(MockResponse{Text: "whole"})
		var got []string
		_, err := mock.Stream(context.Background(), Request{}, func(c string) { got = append(got, c) })
		require.NoError(t, err)
		assert.Equal(t, []string{"whole"}, got)
	})
}

func TestMockProvider_GateHonoursContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "late", Gate: make(chan struct{})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestTags(t *testing.T) {
	def := TagsFrom(context.Background())
	assert.Equal(t, "unknown", def.Purpose)
	assert.Empty(t, def.SessionID)

	want := RequestTags{Purpose: "topic-chat", SessionID: "s1", TopicID: "d1"}
	assert.Equal(t, want, TagsFrom(WithTags(context.Background(), want)))
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]struct {
		cfg Config
		ok  bool
	}{
		"anthropic without key":       {Config{Provider: "anthropic"}, false},
		"anthropic with key":          {Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, true},
		"openai without key":          {Config{Provider: "openai"}, false},
		"openai with key":             {Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, true},
		"openrouter without key":      {Config{Provider: "openrouter"}, false},
		"workers-ai without account":  {Config{Provider: "workers-ai", WorkersAI: WorkersAIConfig{APIToken: "cf"}}, false},
		"workers-ai with account":     {Config{Provider: "workers-ai", WorkersAI: WorkersAIConfig{APIToken: "cf", AccountID: "acc"}}, true},
		"workers-ai gateway base url": {Config{Provider: "workers-ai", WorkersAI: WorkersAIConfig{APIToken: "cf", BaseURL: "https://gw"}}, true},
		"mock needs no key":           {Config{Provider: "mock"}, true},
		"unknown provider":            {Config{Provider: "unknown"}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CFDROID_LLM_PROVIDER", "gemini")
	t.Setenv("CFDROID_GEMINI_API_KEY", "g-key")
	t.Setenv("CFDROID_LLM_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)

	// unset vars keep defaults
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
	assert.Equal(t, 1024, cfg.MaxTokens)
}

func TestDiscoverConfig_WorkersAI(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("CLOUDFLARE_API_TOKEN", "cf-token")

	_, ok := DiscoverConfig()
	assert.False(t, ok, "token without account is not enough")

	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc123")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "workers-ai", cfg.Provider)
	assert.Equal(t, "acc123", cfg.WorkersAI.AccountID)
	assert.NoError(t, cfg.Validate())
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "bogus"}, nil, nil)
	assert.ErrorContains(t, err, "unknown provider")

	_, err = NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil)
	assert.ErrorContains(t, err, "api key not set")
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}
