package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	chatscreen "github.com/abhisek/cfdroid/internal/screens/chat"
	"github.com/abhisek/cfdroid/internal/screens/placeholder"
	"github.com/abhisek/cfdroid/internal/screens/screentest"
	"github.com/abhisek/cfdroid/internal/screens/topics"
)

func selectLabel(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	for range len(h.menu.Items) {
		if item, ok := h.menu.Current(); ok && item.Label == label {
			_, cmd := h.Update(screentest.Special(tea.KeyEnter))
			return cmd
		}
		h.Update(screentest.Special(tea.KeyDown))
	}
	t.Fatalf("menu item %q not reachable", label)
	return nil
}

func pushedScreen(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msgs[0])
	return push.Screen
}

func TestHomeExploreOpensTopics(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	h := New(env.Deps)

	next := pushedScreen(t, selectLabel(t, h, "EXPLORE"))
	assert.IsType(t, &topics.TopicsScreen{}, next)
}

func TestHomeAskDroidOffline(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	h := New(env.Deps)

	next := pushedScreen(t, selectLabel(t, h, "ASK DROID"))
	assert.IsType(t, &placeholder.PlaceholderScreen{}, next)
	assert.Contains(t, h.View(120, 40), "Droid is offline")
	assert.Equal(t, MascotOffline, h.mascotVariant(env.Deps.Tracker.Profile()))
}

func TestHomeAskDroidOnline(t *testing.T) {
	env := screentest.NewEnv(t, chat.BackendFunc(func(context.Context, string, string, chat.SendOptions, func(string)) error {
		return nil
	}))
	h := New(env.Deps)

	next := pushedScreen(t, selectLabel(t, h, "ASK DROID"))
	cs, ok := next.(*chatscreen.ChatScreen)
	require.True(t, ok, "expected chat screen, got %T", next)
	cs.Close()

	assert.NotContains(t, h.View(120, 40), "Droid is offline")
	assert.Equal(t, MascotIdle, h.mascotVariant(env.Deps.Tracker.Profile()))
}

func TestHomeExitQuits(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	h := New(env.Deps)

	cmd := selectLabel(t, h, "EXIT")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeActivityDisabledWithoutEventLog(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	env.Deps.Events = nil
	h := New(env.Deps)

	for _, item := range h.menu.Items {
		if item.Label == "ACTIVITY" {
			assert.True(t, item.Disabled)
			return
		}
	}
	t.Fatal("ACTIVITY item missing")
}

func TestHomeStatsReflectTracker(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	h := New(env.Deps)
	assert.Contains(t, h.View(120, 40), "GUEST")

	for _, id := range []string{"pages", "workers"} {
		_, err := env.Deps.Tracker.RecordView(t.Context(), id)
		require.NoError(t, err)
	}

	view := h.View(120, 40)
	assert.Contains(t, view, "CLOUD BUILDER")
	assert.Contains(t, view, "13% COVERED")
	assert.Contains(t, view, "Workers OS")
}

func TestHomeCompactLayout(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	h := New(env.Deps)

	view := h.View(80, 18)
	assert.Contains(t, view, titleCompact)
	assert.Contains(t, view, "L1")
}
