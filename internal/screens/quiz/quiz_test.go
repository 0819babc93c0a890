package quiz

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/catalog"
	qz "github.com/abhisek/cfdroid/internal/quiz"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screens/screentest"
	"github.com/abhisek/cfdroid/internal/ui/components"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler holds auto-advance callbacks until Fire.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

func (m *manualScheduler) AfterFunc(_ time.Duration, f func()) qz.Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f}
	m.pending = append(m.pending, t)
	return t
}

func (m *manualScheduler) Fire() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.f()
		}
	}
}

func twoQuestions() []catalog.QuizQuestion {
	return []catalog.QuizQuestion{
		{ID: "q1", Question: "Which service stores objects?", Options: []string{"KV", "R2", "D1"}, CorrectIndex: 1, Explanation: "R2 is object storage."},
		{ID: "q2", Question: "Which service runs SQL?", Options: []string{"KV", "R2", "D1"}, CorrectIndex: 2, Explanation: "D1 is SQLite."},
	}
}

// press sends a key and feeds the resulting ChoiceMsg back in.
func press(s *QuizScreen, r rune) {
	_, cmd := s.Update(screentest.Key(r))
	for _, msg := range screentest.Run(cmd) {
		s.Update(msg)
	}
}

// advance fires the pending timer and delivers the transition.
func advance(t *testing.T, s *QuizScreen, sched *manualScheduler, wait tea.Cmd) tea.Cmd {
	t.Helper()
	sched.Fire()
	msg := wait()
	require.IsType(t, transitionMsg{}, msg)
	_, next := s.Update(msg)
	return next
}

func TestQuizScreenFullRun(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	sched := &manualScheduler{}
	s := newScreen(env.Deps, twoQuestions(), sched)
	defer s.Close()

	wait := s.Init()
	require.NotNil(t, wait)
	assert.Contains(t, s.View(100, 30), "Which service stores objects?")
	assert.Contains(t, s.View(100, 30), "Question 1 of 2")

	press(s, '2')
	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.Correct)
	assert.Contains(t, s.View(100, 30), "Correct!")

	wait = advance(t, s, sched, wait)
	assert.Equal(t, 1, s.snap.Index)
	assert.Nil(t, s.feedback)
	assert.Contains(t, s.View(100, 30), "Which service runs SQL?")

	press(s, '1')
	assert.False(t, s.feedback.Correct)
	assert.Contains(t, s.View(100, 30), "Not quite.")

	advance(t, s, sched, wait)
	assert.Equal(t, qz.StateFinished, s.snap.State)
	assert.NoError(t, s.saveErr)
	assert.Contains(t, s.View(100, 30), "You scored 1 / 2")

	p := env.Deps.Tracker.Profile()
	require.NotNil(t, p.Quiz)
	assert.Equal(t, 1, p.Quiz.Score)
	assert.Equal(t, 2, p.Quiz.Total)

	data, err := env.Deps.Metadata.Get(context.Background(), screentest.SessionID)
	require.NoError(t, err)
	require.NotNil(t, data.Metadata.QuizResult)
	assert.Equal(t, 1, data.Metadata.QuizResult.Score)
}

func TestQuizScreenIgnoresSecondAnswer(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	sched := &manualScheduler{}
	s := newScreen(env.Deps, twoQuestions(), sched)
	defer s.Close()
	s.Init()

	press(s, '1')
	first := *s.feedback

	// The revealed choice ignores keys; a stray ChoiceMsg is also a no-op.
	press(s, '2')
	s.Update(components.ChoiceMsg{Index: 1})
	assert.Equal(t, first, *s.feedback)
	assert.Equal(t, 0, s.snap.Score)
}

func TestQuizScreenRetakeAndDone(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	sched := &manualScheduler{}
	s := newScreen(env.Deps, twoQuestions()[:1], sched)
	defer s.Close()

	wait := s.Init()
	press(s, '2')
	advance(t, s, sched, wait)
	require.Equal(t, qz.StateFinished, s.snap.State)
	assert.Contains(t, s.View(100, 30), "You scored 1 / 1")

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])

	s.Update(screentest.Key('r'))
	assert.Equal(t, qz.StateInProgress, s.snap.State)
	assert.Equal(t, 0, s.snap.Score)
	assert.False(t, s.choice.Revealed())
}

func TestQuizScreenCloseCancelsAdvance(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	sched := &manualScheduler{}
	s := newScreen(env.Deps, twoQuestions(), sched)

	wait := s.Init()
	press(s, '2')
	s.Close()
	sched.Fire()

	assert.Nil(t, wait(), "waiting stops once the screen is closed")
	assert.Equal(t, 0, s.session.Snapshot().Index)
	assert.Nil(t, env.Deps.Tracker.Profile().Quiz, "an abandoned run is not recorded")
}

func TestQuizScreenWithoutQuestions(t *testing.T) {
	env := screentest.NewEnv(t, nil)
	s := newScreen(env.Deps, nil, nil)
	defer s.Close()

	assert.Nil(t, s.Init())
	assert.Contains(t, s.View(100, 30), "no questions available")
}

func TestResultColor(t *testing.T) {
	assert.Equal(t, resultColor(100), resultColor(80))
	assert.NotEqual(t, resultColor(80), resultColor(79))
	assert.NotEqual(t, resultColor(50), resultColor(49))
}
