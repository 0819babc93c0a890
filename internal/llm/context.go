package llm

import "context"

// RequestTags label an outgoing request in logs and stored events.
type RequestTags struct {
	Purpose   string
	SessionID string
	TopicID   string
}

type tagsKey struct{}

// WithTags attaches request tags to ctx.
func WithTags(ctx context.Context, tags RequestTags) context.Context {
	return context.WithValue(ctx, tagsKey{}, tags)
}

// TagsFrom returns the tags attached to ctx. Purpose defaults to "unknown".
func TagsFrom(ctx context.Context) RequestTags {
	tags, _ := ctx.Value(tagsKey{}).(RequestTags)
	if tags.Purpose == "" {
		tags.Purpose = "unknown"
	}
	return tags
}
