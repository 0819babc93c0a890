package profile

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screens/screentest"
)

func TestProfileEmpty(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	view := New(env.Deps).View(100, 40)

	assert.Contains(t, view, "Guest")
	assert.Contains(t, view, "Level 1")
	assert.Contains(t, view, "Not taken yet")
	assert.Contains(t, view, "Nothing yet")
	assert.Contains(t, view, "Next: Cloud Builder")
}

func TestProfileShowsRecentsAndQuiz(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	ctx := t.Context()
	for _, id := range []string{"pages", "workers", "kv"} {
		_, err := env.Deps.Tracker.RecordView(ctx, id)
		require.NoError(t, err)
	}
	require.NoError(t, env.Deps.Tracker.RecordQuizResult(ctx, 3, 4))

	view := New(env.Deps).View(100, 40)

	// 3 of 15 topics is 20% coverage; level is 3/2 + floor(3*1.5) + 1.
	assert.Contains(t, view, "Cloud Builder")
	assert.Contains(t, view, "Level 6")
	assert.Contains(t, view, "3 / 4")
	assert.Contains(t, view, " 1. ")
	assert.Contains(t, view, "Workers KV", "most recent first")
	assert.Contains(t, view, "Cloudflare Pages")
}

func TestProfileEnterPops(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
}
