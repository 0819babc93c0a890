// Package assistant answers chat messages with an LLM and records both
// sides of the exchange in the transcript.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/llm"
	"github.com/abhisek/cfdroid/internal/store"
)

// Service implements chat.Backend on top of an llm.Provider.
type Service struct {
	provider    llm.Provider
	transcripts store.TranscriptRepo
	catalog     *catalog.Catalog
	cfg         Config
	logger      *slog.Logger
	now         func() time.Time
}

var _ chat.Backend = (*Service)(nil)

// NewService creates an assistant backend.
func NewService(provider llm.Provider, transcripts store.TranscriptRepo, cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:    provider,
		transcripts: transcripts,
		catalog:     cat,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SendMessage stores the user message, streams a reply through onChunk
// and stores the reply once it is complete. A failed reply leaves only
// the user message in the transcript.
func (s *Service) SendMessage(ctx context.Context, sessionID, text string, opts chat.SendOptions, onChunk func(string)) error {
	var history []store.Message
	if s.cfg.HistoryLimit > 0 {
		var err error
		history, err = s.transcripts.Recent(ctx, sessionID, s.cfg.HistoryLimit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
	}

	userMsg := store.Message{
		ID:        uuid.NewString(),
		Role:      store.RoleUser,
		Content:   text,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.transcripts.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return fmt.Errorf("store user message: %w", err)
	}

	purpose := "chat"
	if opts.TopicID != "" {
		purpose = "topic-chat"
	}
	ctx = llm.WithTags(ctx, llm.RequestTags{Purpose: purpose, SessionID: sessionID, TopicID: opts.TopicID})

	req := llm.Request{
		System:      buildSystemPrompt(s.catalog, opts.TopicID),
		Messages:    append(toLLMMessages(history), llm.Message{Role: llm.RoleUser, Content: text}),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	var streamed strings.Builder
	resp, err := s.provider.Stream(ctx, req, func(chunk string) {
		streamed.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		return fmt.Errorf("assistant reply: %w", err)
	}

	reply := resp.Text
	if reply == "" {
		reply = streamed.String()
	}
	if strings.TrimSpace(reply) == "" {
		return fmt.Errorf("assistant reply: empty response")
	}
	// A caller that gave up (chat cleared) must not get the reply stored.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("assistant reply: %w", err)
	}

	if err := s.transcripts.AppendMessage(ctx, sessionID, store.Message{
		ID:        uuid.NewString(),
		Role:      store.RoleAssistant,
		Content:   reply,
		Timestamp: s.now().UnixMilli(),
	}); err != nil {
		return fmt.Errorf("store assistant message: %w", err)
	}

	s.logger.Debug("assistant replied",
		"session", sessionID,
		"topic", opts.TopicID,
		"history", len(history),
		"output_tokens", resp.Usage.OutputTokens,
	)
	return nil
}

// toLLMMessages converts transcript history. Leading assistant messages
// are dropped so the conversation opens with the user.
func toLLMMessages(msgs []store.Message) []llm.Message {
	for len(msgs) > 0 && msgs[0].Role == store.RoleAssistant {
		msgs = msgs[1:]
	}
	out := make([]llm.Message, 0, len(msgs)+1)
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Role == store.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
