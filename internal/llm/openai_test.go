package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cc := openai.DefaultConfig("test-key")
	cc.BaseURL = srv.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cc), model: "gpt-4o-mini"}
}

func completion(content, finish string, usage map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
		}
		if usage != nil {
			body["usage"] = usage
		}
		json.NewEncoder(w).Encode(body)
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	p := openAIServer(t, completion("D1 is SQLite at the edge.", "stop",
		map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65}))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a platform guide.",
		Messages:  []Message{{Role: RoleUser, Content: "What is D1?"}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "D1 is SQLite at the edge.", resp.Text)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := openAIServer(t, completion("R2 has no egr", "length", nil))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "R2?"}},
		MaxTokens: 4,
	})
	var mt *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &mt)
	assert.Equal(t, "R2 has no egr", mt.Partial)
}

func TestOpenAIProvider_Stream(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range []string{
			`{"id":"c1","object":"chat.completion.chunk","model":"gpt-4o-mini","choices":[{"index":0,"delta":{"role":"assistant","content":""}}]}`,
			`{"id":"c1","object":"chat.completion.chunk","model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":"KV is "}}]}`,
			`{"id":"c1","object":"chat.completion.chunk","model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":"eventually consistent."},"finish_reason":"stop"}]}`,
			`{"id":"c1","object":"chat.completion.chunk","model":"gpt-4o-mini","choices":[],"usage":{"prompt_tokens":9,"completion_tokens":5,"total_tokens":14}}`,
		} {
			fmt.Fprintf(w, "data: %s\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var got []string
	resp, err := p.Stream(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "KV?"}},
		MaxTokens: 64,
	}, func(c string) { got = append(got, c) })
	require.NoError(t, err)
	assert.Equal(t, []string{"KV is ", "eventually consistent."}, got)
	assert.Equal(t, "KV is eventually consistent.", resp.Text)
	assert.Equal(t, 14, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		isRate bool
	}{
		{"429", http.StatusTooManyRequests, true},
		{"500", http.StatusInternalServerError, false},
		{"401", http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "x", "message": http.StatusText(tc.status)},
				})
			})

			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			require.Error(t, err)

			var rl *ErrRateLimit
			var down *ErrProviderUnavailable
			assert.Equal(t, tc.isRate, errors.As(err, &rl))
			assert.Equal(t, !tc.isRate, errors.As(err, &down))
		})
	}
}

func TestOpenAIProvider_ModelAliases(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
}

func TestWorkersAIProvider_RoundTrip(t *testing.T) {
	var gotPath, gotAuth, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		completion("Use a Durable Object.", "stop",
			map[string]any{"prompt_tokens": 11, "completion_tokens": 5, "total_tokens": 16})(w, r)
	}))
	t.Cleanup(srv.Close)

	p, err := NewWorkersAIProvider(WorkersAIConfig{
		APIToken: "cf-token",
		Model:    "@cf/meta/llama-3.1-8b-instruct",
		BaseURL:  srv.URL + "/client/v4/accounts/acc/ai/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "How do I coordinate websockets?"}},
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.Equal(t, "Use a Durable Object.", resp.Text)
	assert.Equal(t, "/client/v4/accounts/acc/ai/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer cf-token", gotAuth)
	assert.Equal(t, "@cf/meta/llama-3.1-8b-instruct", gotModel)
}
