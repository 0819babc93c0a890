// Package chat manages one assistant conversation: optimistic sends,
// streamed replies and reconciliation with the stored transcript.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cfdroid/internal/apperr"
	"github.com/abhisek/cfdroid/internal/store"
)

// ErrSendInProgress is returned when Send is called while an earlier
// send is still streaming or a Clear is running. Sends are rejected, not
// queued.
var ErrSendInProgress = errors.New("a message is already being sent")

// ErrDetached is returned by a Send whose session was detached or
// cleared before the reply was finalized.
var ErrDetached = errors.New("chat session detached")

// EventKind identifies a send progress event.
type EventKind int

const (
	// EventUserMessage: the provisional user message was appended.
	EventUserMessage EventKind = iota
	// EventChunk: a piece of the reply arrived.
	EventChunk
	// EventDone: the reply was finalized and the transcript reloaded.
	EventDone
	// EventFailed: the backend failed; Err is set.
	EventFailed
)

// Event reports send progress to the caller.
type Event struct {
	Kind    EventKind
	Chunk   string
	Message *store.Message
	Err     error
}

// Options configures a Session.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string

	// NewSessionID issues the identifier a session moves to after Clear.
	// Defaults to a random UUID.
	NewSessionID func(ctx context.Context) (string, error)
}

// Session is the local view of one session's transcript.
type Session struct {
	mu        sync.Mutex
	store     store.MetadataStore
	backend   Backend
	sessionID string
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	rotate    func(ctx context.Context) (string, error)

	messages    []store.Message
	unconfirmed map[string]bool
	sending     bool
	clearing    bool
	partial     strings.Builder

	// gen is bumped by Detach and Clear; callbacks from an older
	// generation do not touch local state.
	gen uint64

	// cancels holds one entry per running send, detached ones included.
	cancels  map[int]context.CancelFunc
	nextSend int
}

// NewSession creates a chat session. Call LoadHistory to populate it.
func NewSession(ms store.MetadataStore, backend Backend, sessionID string, opts Options) *Session {
	s := &Session{
		store:       ms,
		backend:     backend,
		sessionID:   sessionID,
		logger:      opts.Logger,
		now:         opts.Now,
		newID:       opts.NewID,
		rotate:      opts.NewSessionID,
		unconfirmed: make(map[string]bool),
		cancels:     make(map[int]context.CancelFunc),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.rotate == nil {
		s.rotate = func(context.Context) (string, error) { return uuid.NewString(), nil }
	}
	return s
}

// Send posts text and streams the assistant reply. onEvent may be nil.
// It returns the finalized assistant message.
//
// On backend failure the provisional user message stays in the local
// view, marked unconfirmed, and a *apperr.BackendError is returned.
func (s *Session) Send(ctx context.Context, text string, opts SendOptions, onEvent func(Event)) (*store.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &apperr.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	emit := func(ev Event) {
		if onEvent != nil {
			onEvent(ev)
		}
	}

	s.mu.Lock()
	if s.sending || s.clearing {
		s.mu.Unlock()
		return nil, ErrSendInProgress
	}
	s.sending = true
	s.partial.Reset()
	gen, sessionID := s.gen, s.sessionID
	ctx, cancel := context.WithCancel(ctx)
	key := s.nextSend
	s.nextSend++
	s.cancels[key] = cancel
	userMsg := store.Message{
		ID:        s.newID(),
		Role:      store.RoleUser,
		Content:   text,
		Timestamp: s.now().UnixMilli(),
	}
	s.messages = append(s.messages, userMsg)
	s.unconfirmed[userMsg.ID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.cancels, key)
		s.mu.Unlock()
		cancel()
	}()

	emit(Event{Kind: EventUserMessage, Message: &userMsg})

	err := s.backend.SendMessage(ctx, sessionID, text, opts, func(chunk string) {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.partial.WriteString(chunk)
		s.mu.Unlock()
		emit(Event{Kind: EventChunk, Chunk: chunk})
	})

	if err != nil {
		s.mu.Lock()
		current := gen == s.gen
		if current {
			s.sending = false
			s.partial.Reset()
		}
		s.mu.Unlock()

		if !current {
			s.logger.Debug("detached send ended", "session", sessionID, "err", err)
			return nil, ErrDetached
		}
		s.logger.Warn("chat send failed", "session", sessionID, "err", err)
		bErr := &apperr.BackendError{Err: err}
		emit(Event{Kind: EventFailed, Err: bErr})
		return nil, bErr
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return nil, ErrDetached
	}
	reply := store.Message{
		ID:        s.newID(),
		Role:      store.RoleAssistant,
		Content:   s.partial.String(),
		Timestamp: s.now().UnixMilli(),
	}
	s.partial.Reset()
	s.mu.Unlock()

	data, getErr := s.store.Get(ctx, sessionID)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return nil, ErrDetached
	}
	s.sending = false

	if getErr != nil {
		// Keep the local view; the reply is still shown.
		s.messages = append(s.messages, reply)
		s.mu.Unlock()
		s.logger.Warn("transcript reload failed", "session", sessionID, "err", getErr)
		emit(Event{Kind: EventDone, Message: &reply})
		return &reply, &apperr.PersistenceError{Op: "reload transcript", Err: getErr}
	}

	s.replaceLocked(data.Messages)
	if stored, ok := findReply(s.messages, reply.Content); ok {
		reply = stored
	}
	s.mu.Unlock()

	emit(Event{Kind: EventDone, Message: &reply})
	return &reply, nil
}

// LoadHistory replaces the local view with the stored transcript.
func (s *Session) LoadHistory(ctx context.Context) ([]store.Message, error) {
	s.mu.Lock()
	gen, sessionID := s.gen, s.sessionID
	s.mu.Unlock()

	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return s.Messages(), &apperr.PersistenceError{Op: "load transcript", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen && !s.sending {
		s.replaceLocked(data.Messages)
	}
	return slices.Clone(data.Messages), nil
}

// Clear deletes the stored transcript and session row, then moves the
// session to a new identifier. Sends still in flight, detached ones
// included, are cancelled so they cannot write into the cleared history.
// When only the rotation fails the transcript is gone but the old
// identifier stays in use.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.clearing {
		s.mu.Unlock()
		return ErrSendInProgress
	}
	s.clearing = true
	s.gen++
	s.sending = false
	s.partial.Reset()
	for _, cancel := range s.cancels {
		cancel()
	}
	old := s.sessionID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.clearing = false
		s.mu.Unlock()
	}()

	if err := s.store.ClearSession(ctx, old); err != nil {
		return &apperr.PersistenceError{Op: "clear session", Err: err}
	}
	s.mu.Lock()
	s.messages = nil
	clear(s.unconfirmed)
	s.mu.Unlock()

	id, err := s.rotate(ctx)
	if err != nil {
		return &apperr.PersistenceError{Op: "rotate session id", Err: err}
	}

	s.mu.Lock()
	s.sessionID = id
	s.mu.Unlock()
	s.logger.Info("chat cleared", "old_session", old, "session", id)
	return nil
}

// Detach stops all local mutation from an in-flight send. The backend
// request itself keeps running.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.sending = false
	s.partial.Reset()
}

// Messages returns the local transcript view.
func (s *Session) Messages() []store.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// IsTyping reports whether a reply is being streamed.
func (s *Session) IsTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Partial returns the reply text received so far.
func (s *Session) Partial() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partial.String()
}

// Unconfirmed reports whether a message is a provisional entry that the
// store has not confirmed.
func (s *Session) Unconfirmed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unconfirmed[id]
}

// SessionID returns the current session key. It changes after Clear.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *Session) replaceLocked(msgs []store.Message) {
	s.messages = slices.Clone(msgs)
	clear(s.unconfirmed)
}

// findReply returns the newest stored assistant message with the given
// content. A detached send may have stored its reply after ours, so the
// last assistant message is not necessarily this send's.
func findReply(msgs []store.Message, content string) (store.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == store.RoleAssistant && msgs[i].Content == content {
			return msgs[i], true
		}
	}
	return store.Message{}, false
}
