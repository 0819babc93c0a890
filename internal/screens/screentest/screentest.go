// Package screentest builds screen dependencies backed by a temporary
// store and drives screens with synthetic key presses.
package screentest

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/store"
)

// SessionID is the session every test dependency set uses.
const SessionID = "test-session"

// Env is a dependency set plus the store behind it.
type Env struct {
	Deps  *screens.Deps
	Store *store.Store
}

// NewEnv opens a fresh store and loads a tracker over the default
// catalog. backend may be nil to simulate a missing LLM provider.
func NewEnv(t *testing.T, backend chat.Backend) *Env {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "screens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := catalog.Default()
	tracker := progress.NewTracker(st.MetadataStore(), SessionID, cat.Size())
	require.NoError(t, tracker.Load(context.Background()))

	return &Env{
		Store: st,
		Deps: &screens.Deps{
			Catalog:     cat,
			Tracker:     tracker,
			Metadata:    st.MetadataStore(),
			Events:      st.EventRepo(),
			ChatBackend: backend,
			ChatHint:    "Set CFDROID_LLM_PROVIDER to enable chat.",
		},
	}
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of text to s and returns the last screen.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(r))
	}
	return s
}

// Run executes cmd and returns the messages it produces, flattening
// batches. Commands returning nil are skipped.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
