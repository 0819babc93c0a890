package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/apperr"
	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/llm"
	"github.com/abhisek/cfdroid/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSendMessageStreamsAndPersists(t *testing.T) {
	st := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"Run ", "wrangler deploy."}})
	svc := NewService(mock, st.TranscriptRepo(), catalog.Default(), DefaultConfig(), nil)

	var chunks []string
	err := svc.SendMessage(context.Background(), "s1", "How do I ship a Worker?", chat.SendOptions{}, func(c string) {
		chunks = append(chunks, c)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Run ", "wrangler deploy."}, chunks)

	msgs, err := st.TranscriptRepo().Recent(context.Background(), "s1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, store.RoleUser, msgs[0].Role)
	assert.Equal(t, "How do I ship a Worker?", msgs[0].Content)
	assert.Equal(t, store.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Run wrangler deploy.", msgs[1].Content)

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].System, "Known services:")
}

func TestSendMessageIncludesHistoryAndTopic(t *testing.T) {
	st := openStore(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "D1 is SQLite."},
		llm.MockResponse{Text: "500MB per database."},
	)
	cfg := DefaultConfig()
	cfg.HistoryLimit = 2
	svc := NewService(mock, st.TranscriptRepo(), catalog.Default(), cfg, nil)
	ctx := context.Background()

	require.NoError(t, svc.SendMessage(ctx, "s1", "What is D1?", chat.SendOptions{}, nil))
	require.NoError(t, svc.SendMessage(ctx, "s1", "Storage limit?", chat.SendOptions{TopicID: "d1"}, nil))

	req := mock.Calls[1]
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "What is D1?", req.Messages[0].Content)
	assert.Equal(t, llm.RoleAssistant, req.Messages[1].Role)
	assert.Equal(t, "Storage limit?", req.Messages[2].Content)
	assert.Contains(t, req.System, "The user is reading about D1 Database")
	assert.Contains(t, req.System, "500MB storage per database")
}

func TestSendMessageFailureKeepsUserMessageOnly(t *testing.T) {
	st := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	svc := NewService(mock, st.TranscriptRepo(), catalog.Default(), DefaultConfig(), nil)

	err := svc.SendMessage(context.Background(), "s1", "hello", chat.SendOptions{}, nil)
	var rl *llm.ErrRateLimit
	require.ErrorAs(t, err, &rl)

	msgs, err := st.TranscriptRepo().Recent(context.Background(), "s1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, store.RoleUser, msgs[0].Role)
}

func TestSendMessageRejectsEmptyReply(t *testing.T) {
	st := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"  "}})
	svc := NewService(mock, st.TranscriptRepo(), nil, DefaultConfig(), nil)

	err := svc.SendMessage(context.Background(), "s1", "hello", chat.SendOptions{}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty response"))
}

func TestChatSessionOverService(t *testing.T) {
	st := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"KV is ", "eventually consistent."}})
	svc := NewService(mock, st.TranscriptRepo(), catalog.Default(), DefaultConfig(), nil)
	sess := chat.NewSession(st.MetadataStore(), svc, "s1", chat.Options{})
	ctx := context.Background()

	_, err := sess.Send(ctx, "", chat.SendOptions{}, nil)
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, sess.Messages())

	reply, err := sess.Send(ctx, "hello", chat.SendOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "KV is eventually consistent.", reply.Content)
	assert.Len(t, sess.Messages(), 2)

	// The provider queue is empty now, so the next send fails.
	_, err = sess.Send(ctx, "again", chat.SendOptions{}, nil)
	var bErr *apperr.BackendError
	require.ErrorAs(t, err, &bErr)
	assert.Len(t, sess.Messages(), 3)
	assert.False(t, sess.IsTyping())
}

func TestClearDuringReplyStoresNothing(t *testing.T) {
	st := openStore(t)
	gate := make(chan struct{})
	mock := llm.NewMockProvider(llm.MockResponse{Text: "late", Gate: gate})
	svc := NewService(mock, st.TranscriptRepo(), catalog.Default(), DefaultConfig(), nil)
	sess := chat.NewSession(st.MetadataStore(), svc, "s1", chat.Options{
		NewSessionID: func(context.Context) (string, error) { return "s2", nil },
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := sess.Send(ctx, "slow question", chat.SendOptions{}, nil)
		done <- err
	}()
	require.Eventually(t, func() bool { return mock.CallCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, sess.Clear(ctx))
	close(gate)
	require.ErrorIs(t, <-done, chat.ErrDetached)

	for _, id := range []string{"s1", "s2"} {
		msgs, err := st.TranscriptRepo().Recent(ctx, id, 0)
		require.NoError(t, err)
		assert.Empty(t, msgs, id)
	}
	history, err := sess.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestToLLMMessagesDropsLeadingAssistant(t *testing.T) {
	got := toLLMMessages([]store.Message{
		{Role: store.RoleAssistant, Content: "orphan"},
		{Role: store.RoleUser, Content: "q"},
		{Role: store.RoleAssistant, Content: "a"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, llm.RoleUser, got[0].Role)
}
