package store

import (
	"context"
	"time"
)

// QueryOpts filters and pages event queries. Zero fields are ignored.
type QueryOpts struct {
	Limit     int
	After     int64 // id > After
	Before    int64 // id < Before
	From      time.Time
	To        time.Time
	SessionID string
	Purpose   string
	Failed    bool // only unsuccessful calls
}

// Role is the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat transcript entry. Timestamp is epoch milliseconds.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// QuizResult is the outcome of the most recently completed quiz run.
type QuizResult struct {
	Score     int   `json:"score"`
	Total     int   `json:"total"`
	Timestamp int64 `json:"timestamp"`
}

// ProfileMetadata is the per-session progress document.
type ProfileMetadata struct {
	Version    int         `json:"version"`
	SessionID  string      `json:"sessionId"`
	Recents    []string    `json:"recents"`
	QuizResult *QuizResult `json:"quizResult,omitempty"`
}

// SessionData is everything the store holds for one session.
type SessionData struct {
	Messages []Message
	Metadata ProfileMetadata
}

// MetadataPatch is a partial metadata update. A nil field is left
// unchanged; a non-nil empty Recents clears the list.
type MetadataPatch struct {
	Recents    []string
	QuizResult *QuizResult
}

// MetadataStore is the per-session persistence boundary for progress and
// transcripts. A write is observed by the next read of the same session.
type MetadataStore interface {
	// Get returns the session's transcript and metadata. Unknown sessions
	// yield empty data, not an error.
	Get(ctx context.Context, sessionID string) (*SessionData, error)

	// UpdateMetadata merges patch into the stored metadata.
	UpdateMetadata(ctx context.Context, sessionID string, patch MetadataPatch) error

	// ClearMessages deletes the session's transcript.
	ClearMessages(ctx context.Context, sessionID string) error

	// ClearSession deletes the session's transcript and metadata row. The
	// id is not reused afterwards.
	ClearSession(ctx context.Context, sessionID string) error

	// ClearAllSessions deletes every session's metadata and transcript.
	ClearAllSessions(ctx context.Context) error
}

// TranscriptRepo is the write side of chat transcripts, used by the
// assistant backend.
type TranscriptRepo interface {
	// AppendMessage adds msg to the end of the session transcript.
	AppendMessage(ctx context.Context, sessionID string, msg Message) error

	// Recent returns up to limit of the newest messages, oldest first.
	// limit <= 0 returns the whole transcript.
	Recent(ctx context.Context, sessionID string, limit int) ([]Message, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Streamed     bool
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID int
	LLMRequestEventData
	Timestamp time.Time
}

// LLMPurposeUsage aggregates token usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
