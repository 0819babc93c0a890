package chat

import "context"

// SendOptions carries optional context for a backend request.
type SendOptions struct {
	// TopicID scopes the conversation to one catalog topic.
	TopicID string
}

// Backend produces assistant replies. Implementations persist both sides
// of the exchange so that a following transcript read includes them.
// onChunk is called in order, zero or more times, before SendMessage
// returns.
type Backend interface {
	SendMessage(ctx context.Context, sessionID, text string, opts SendOptions, onChunk func(string)) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, sessionID, text string, opts SendOptions, onChunk func(string)) error

func (f BackendFunc) SendMessage(ctx context.Context, sessionID, text string, opts SendOptions, onChunk func(string)) error {
	return f(ctx, sessionID, text, opts, onChunk)
}
