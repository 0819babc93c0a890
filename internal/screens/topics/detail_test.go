package topics

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/router"
	chatscreen "github.com/abhisek/cfdroid/internal/screens/chat"
	"github.com/abhisek/cfdroid/internal/screens/placeholder"
	"github.com/abhisek/cfdroid/internal/screens/screentest"
)

func pushed(t *testing.T, cmd tea.Cmd) router.PushScreenMsg {
	t.Helper()
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msgs[0])
	return push
}

func TestDetailRecordsVisit(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "kv")

	for _, msg := range screentest.Run(d.Init()) {
		d.Update(msg)
	}

	assert.Equal(t, []string{"kv"}, env.Deps.Tracker.Recents())
	assert.Nil(t, d.saveErr)

	data, err := env.Deps.Metadata.Get(context.Background(), screentest.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kv"}, data.Metadata.Recents)
}

func TestDetailShowsSaveError(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "kv")

	d.Update(viewRecordedMsg{Err: errors.New("disk full")})
	assert.Contains(t, d.View(100, 30), "Progress not saved")
}

func TestDetailUnknownTopic(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "nope")

	assert.Nil(t, d.Init(), "unknown topics are not recorded")
	assert.Equal(t, "Not found", d.Title())
	assert.Contains(t, d.View(100, 30), `Unknown service "nope"`)

	_, cmd := d.Update(screentest.Key('a'))
	assert.Nil(t, cmd)
}

func TestDetailTabsCycle(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "pages")

	assert.Contains(t, d.View(100, 40), "Free tier limits")

	d.Update(screentest.Special(tea.KeyTab))
	assert.Equal(t, tabSetup, d.tab)
	assert.Contains(t, d.View(100, 40), "wrangler pages deploy dist")

	d.Update(screentest.Special(tea.KeyTab))
	d.Update(screentest.Special(tea.KeyTab))
	assert.Equal(t, tabErrors, d.tab)
	assert.Contains(t, d.View(100, 40), "BUILD_TIMEOUT")

	d.Update(screentest.Special(tea.KeyTab))
	assert.Equal(t, tabBrief, d.tab, "tabs wrap around")

	d.Update(screentest.Special(tea.KeyLeft))
	assert.Equal(t, tabErrors, d.tab)
}

func TestDetailRelatedNumberKeys(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "pages")

	_, cmd := d.Update(screentest.Key('2'))
	push := pushed(t, cmd)
	next, ok := push.Screen.(*DetailScreen)
	require.True(t, ok)
	assert.Equal(t, "Workers KV", next.Title())

	_, cmd = d.Update(screentest.Key('9'))
	assert.Nil(t, cmd, "out of range related index")
}

func TestDetailAskDroidWithoutBackend(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "pages")

	_, cmd := d.Update(screentest.Key('a'))
	push := pushed(t, cmd)
	_, ok := push.Screen.(*placeholder.PlaceholderScreen)
	assert.True(t, ok, "expected placeholder, got %T", push.Screen)
}

func TestDetailAskDroidOpensScopedChat(t *testing.T) {
	backend := chat.BackendFunc(func(context.Context, string, string, chat.SendOptions, func(string)) error {
		return nil
	})
	env := screentest.NewEnv(t, backend)
	d := NewDetail(env.Deps, "d1")

	_, cmd := d.Update(screentest.Key('a'))
	push := pushed(t, cmd)
	cs, ok := push.Screen.(*chatscreen.ChatScreen)
	require.True(t, ok, "expected chat screen, got %T", push.Screen)
	assert.Equal(t, "Ask Droid · D1 Database", cs.Title())
	cs.Close()
}

func TestDetailHomeUnwindsStack(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	d := NewDetail(env.Deps, "kv")

	_, cmd := d.Update(screentest.Key('H'))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopToRootMsg{}, msgs[0])
}
