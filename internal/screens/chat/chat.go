// Package chat is the assistant conversation screen.
package chat

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/apperr"
	chatsess "github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/store"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// inputHeight is the space reserved below the transcript.
const inputHeight = 3

// ChatScreen streams a conversation with the assistant. Each screen owns
// its own chat.Session and detaches it when closed.
type ChatScreen struct {
	deps       *screens.Deps
	topicID    string
	topicTitle string
	session    *chatsess.Session
	input      components.TextInput

	events    <-chan tea.Msg
	sending   bool
	pending   string          // id of the user message being sent
	failed    map[string]bool // user messages whose send failed
	done      chan struct{}
	closeOnce sync.Once

	scroll int // lines scrolled up from the bottom
	errMsg string
	loaded bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)

// New creates a chat screen. topicID, when set, scopes questions to that
// service.
func New(deps *screens.Deps, topicID string) *ChatScreen {
	s := &ChatScreen{
		deps:    deps,
		topicID: topicID,
		session: chatsess.NewSession(deps.Metadata, deps.ChatBackend, deps.SessionID(), chatsess.Options{
			Logger:       deps.Log(),
			NewSessionID: deps.NextSession,
		}),
		input:  components.NewTextInput("Ask about any Cloudflare service…", false, 500),
		failed: make(map[string]bool),
		done:   make(chan struct{}),
	}
	if t, ok := deps.Catalog.Lookup(topicID); ok {
		s.topicTitle = t.Title
	}
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	sess := s.session
	return tea.Batch(
		s.input.Init(),
		func() tea.Msg {
			_, err := sess.LoadHistory(context.Background())
			return historyLoadedMsg{Err: err}
		},
	)
}

func (s *ChatScreen) Title() string {
	if s.topicTitle != "" {
		return "Ask Droid · " + s.topicTitle
	}
	return "Ask Droid"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close detaches the session. An in-flight reply still completes on the
// backend but no longer reaches this screen.
func (s *ChatScreen) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.session.Detach()
	})
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = "Could not load the conversation: " + msg.Err.Error()
		}
		return s, nil

	case streamMsg:
		if msg.src == s.events {
			s.handleStream(msg.msg)
		}
		return s, waitForEvent(msg.src)

	case clearedMsg:
		if msg.Err != nil {
			s.errMsg = describe(msg.Err)
		} else {
			s.errMsg = ""
			s.scroll = 0
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "ctrl+l":
			sess := s.session
			s.sending = false
			s.events = nil
			clear(s.failed)
			return s, func() tea.Msg {
				return clearedMsg{Err: sess.Clear(context.Background())}
			}
		case "pgup":
			s.scroll += 5
			return s, nil
		case "pgdown":
			s.scroll = max(s.scroll-5, 0)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send starts a Send on a goroutine and returns the command that relays
// its events back to the update loop.
func (s *ChatScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}
	if s.sending {
		s.errMsg = "Droid is still replying…"
		return nil
	}

	s.input.Reset()
	s.errMsg = ""
	s.sending = true
	s.scroll = 0

	events := make(chan tea.Msg, 64)
	s.events = events
	sess, done := s.session, s.done
	opts := chatsess.SendOptions{TopicID: s.topicID}

	go func() {
		defer close(events)
		forward := func(m tea.Msg) {
			select {
			case events <- m:
			case <-done:
			}
		}
		_, err := sess.Send(context.Background(), text, opts, func(ev chatsess.Event) {
			forward(chatEventMsg{Event: ev})
		})
		forward(sendDoneMsg{Err: err})
	}()

	return waitForEvent(events)
}

func (s *ChatScreen) handleStream(msg tea.Msg) {
	switch msg := msg.(type) {
	case chatEventMsg:
		switch msg.Event.Kind {
		case chatsess.EventFailed:
			s.errMsg = describe(msg.Event.Err)
			s.failed[s.pending] = true
		case chatsess.EventUserMessage:
			s.pending = msg.Event.Message.ID
			s.scroll = 0
		case chatsess.EventChunk:
			s.scroll = 0
		}
	case sendDoneMsg:
		s.sending = false
		if msg.Err != nil && !errors.Is(msg.Err, chatsess.ErrDetached) && s.errMsg == "" {
			s.errMsg = describe(msg.Err)
		}
	}
}

func describe(err error) string {
	var be *apperr.BackendError
	var pe *apperr.PersistenceError
	switch {
	case errors.As(err, &be):
		return "Droid could not reply. Try again in a moment."
	case errors.As(err, &pe):
		return "Reply shown but the conversation could not be refreshed."
	case errors.Is(err, chatsess.ErrSendInProgress):
		return "Droid is still replying…"
	default:
		return err.Error()
	}
}

func (s *ChatScreen) View(width, height int) string {
	bodyWidth := max(width-6, 20)
	transcriptHeight := max(height-inputHeight, 1)

	lines := s.transcriptLines(bodyWidth)
	s.scroll = min(s.scroll, max(len(lines)-transcriptHeight, 0))
	end := len(lines) - s.scroll
	start := max(end-transcriptHeight, 0)
	visible := lines[start:end]

	pad := transcriptHeight - len(visible)
	var b strings.Builder
	if pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n")

	status := ""
	switch {
	case s.errMsg != "":
		status = theme.ErrorText.Render("  " + s.errMsg)
	case s.sending && s.session.Partial() == "":
		status = theme.Hint.Render("  Droid is typing…")
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n  ")
	b.WriteString(s.input.View())
	return b.String()
}

func (s *ChatScreen) transcriptLines(width int) []string {
	msgs := s.session.Messages()
	if len(msgs) == 0 && !s.sending {
		hint := "Ask anything about Cloudflare's developer platform."
		if s.topicTitle != "" {
			hint = fmt.Sprintf("Ask anything about %s.", s.topicTitle)
		}
		if !s.loaded {
			hint = "Loading conversation…"
		}
		return []string{theme.Hint.Render("  " + hint)}
	}

	var lines []string
	for _, m := range msgs {
		lines = append(lines, s.renderMessage(m, width)...)
	}
	if s.sending {
		if partial := s.session.Partial(); partial != "" {
			lines = append(lines, renderBubble("Droid", theme.Primary, partial+"▍", width)...)
		}
	}
	return lines
}

func (s *ChatScreen) renderMessage(m store.Message, width int) []string {
	if m.Role == store.RoleUser {
		label := "You"
		if s.failed[m.ID] && s.session.Unconfirmed(m.ID) {
			label = "You (not saved)"
		}
		return renderBubble(label, theme.Secondary, m.Content, width)
	}
	return renderBubble("Droid", theme.Primary, m.Content, width)
}

func renderBubble(label string, c color.Color, text string, width int) []string {
	head := lipgloss.NewStyle().Foreground(c).Bold(true).Render("  " + label)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width).PaddingLeft(4).Render(text)
	out := []string{head}
	out = append(out, strings.Split(body, "\n")...)
	return append(out, "")
}
