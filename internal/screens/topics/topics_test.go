package topics

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screens/screentest"
)

func selectedID(t *testing.T, s *TopicsScreen) string {
	t.Helper()
	topic, ok := s.Selected()
	require.True(t, ok, "expected a selected topic")
	return topic.ID
}

func TestTopicsStartsOnFirstTopic(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	assert.Equal(t, "pages", selectedID(t, s))
	assert.False(t, s.CapturingInput())
}

func TestTopicsCursorSkipsHeaders(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	s.Update(screentest.Special(tea.KeyDown))
	assert.Equal(t, "workers", selectedID(t, s))

	s.Update(screentest.Special(tea.KeyUp))
	s.Update(screentest.Special(tea.KeyUp))
	assert.Equal(t, "pages", selectedID(t, s), "cursor stays on the first topic")
}

func TestTopicsTabJumpsCategory(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	s.Update(screentest.Special(tea.KeyTab))
	assert.Equal(t, "d1", selectedID(t, s))

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, "pages", selectedID(t, s))
}

func TestTopicsSearchFilters(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	s.Update(screentest.Key('/'))
	require.True(t, s.CapturingInput())

	screentest.Type(s, "database")
	assert.Equal(t, "d1", selectedID(t, s))

	view := s.View(100, 30)
	assert.Contains(t, view, "D1 Database")
	assert.Contains(t, view, "Vectorize")
	assert.NotContains(t, view, "Cloudflare Pages")

	// Arrow keys leave the search box and move the cursor.
	s.Update(screentest.Special(tea.KeyDown))
	assert.False(t, s.CapturingInput())
	assert.Equal(t, "vectorize", selectedID(t, s))
}

func TestTopicsSearchEscClears(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	s.Update(screentest.Key('/'))
	screentest.Type(s, "tunnel")
	assert.Equal(t, "tunnel", selectedID(t, s))

	s.Update(screentest.Special(tea.KeyEscape))
	assert.False(t, s.CapturingInput())
	assert.Equal(t, "pages", selectedID(t, s))
}

func TestTopicsSearchNoMatch(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	s.Update(screentest.Key('/'))
	screentest.Type(s, "mainframe")

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Contains(t, s.View(100, 30), "No services match")

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	assert.Nil(t, cmd)
	_, cmd = s.Update(screentest.Special(tea.KeyEnter))
	assert.Nil(t, cmd, "enter with no selection opens nothing")
}

func TestTopicsEnterPushesDetail(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := New(env.Deps)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)

	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msgs[0])
	detail, ok := push.Screen.(*DetailScreen)
	require.True(t, ok)
	assert.Equal(t, "Cloudflare Pages", detail.Title())
}

func TestTopicsMarksVisited(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	_, err := env.Deps.Tracker.RecordView(t.Context(), "pages")
	require.NoError(t, err)

	s := New(env.Deps)
	lines := strings.Split(s.View(120, 40), "\n")

	var pagesLine, workersLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Cloudflare Pages"):
			pagesLine = l
		case strings.Contains(l, "Workers OS"):
			workersLine = l
		}
	}
	assert.Contains(t, pagesLine, "●")
	assert.NotContains(t, workersLine, "●")
}
