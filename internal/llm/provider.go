// Package llm is the chat backend's model layer: one Provider interface
// over Anthropic, OpenAI, Gemini, OpenRouter and Workers AI, plus retry
// and event-logging decorators.
package llm

import "context"

// Provider answers a conversation with one assistant turn.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Stream delivers the reply through onChunk, in order, on the calling
	// goroutine. The returned Response holds the full text and usage.
	Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error)

	ModelID() string
}

// Role is the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one completion call. Messages run oldest first and end with
// the user turn being answered.
type Request struct {
	System    string
	Messages  []Message
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Response is a finished reply.
type Response struct {
	Text  string
	Usage Usage

	// Model actually served, which may differ from the configured alias.
	Model string

	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
