package chat

import (
	tea "charm.land/bubbletea/v2"

	chatsess "github.com/abhisek/cfdroid/internal/chat"
)

// chatEventMsg carries one send progress event from the session.
type chatEventMsg struct {
	Event chatsess.Event
}

// sendDoneMsg is sent when Send returns. The event channel closes after it.
type sendDoneMsg struct {
	Err error
}

// historyLoadedMsg is sent when the stored transcript has been read.
type historyLoadedMsg struct {
	Err error
}

// clearedMsg is sent when the transcript has been wiped.
type clearedMsg struct {
	Err error
}

// streamMsg tags a relayed message with the channel it came from, so a
// stream replaced by a newer send can be drained and ignored.
type streamMsg struct {
	src <-chan tea.Msg
	msg tea.Msg
}

// waitForEvent blocks until the next message on ch. A closed channel
// yields no message.
func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return streamMsg{src: ch, msg: msg}
	}
}
