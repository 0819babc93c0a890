// Package quiz is the knowledge-check screen.
package quiz

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/progress"
	qz "github.com/abhisek/cfdroid/internal/quiz"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// transitionMsg is relayed from the session's auto-advance.
type transitionMsg struct {
	Snap qz.Snapshot
	Err  error
}

// QuizScreen runs one quiz session. Leaving the screen abandons an
// unfinished run.
type QuizScreen struct {
	deps     *screens.Deps
	session  *qz.Session
	snap     qz.Snapshot
	choice   components.MultiChoice
	feedback *qz.Feedback
	saveErr  error
	errMsg   string

	transitions chan transitionMsg
	done        chan struct{}
	closeOnce   sync.Once
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen over the built-in question bank.
func New(deps *screens.Deps) *QuizScreen {
	return newScreen(deps, catalog.QuizQuestions(), nil)
}

func newScreen(deps *screens.Deps, questions []catalog.QuizQuestion, sched qz.Scheduler) *QuizScreen {
	s := &QuizScreen{
		deps:        deps,
		transitions: make(chan transitionMsg, 4),
		done:        make(chan struct{}),
	}

	transitions, done := s.transitions, s.done
	sess, err := qz.NewSession(questions, qz.Options{
		FeedbackDelay: deps.FeedbackDelay,
		Scheduler:     sched,
		Recorder:      deps.Tracker,
		Logger:        deps.Log(),
		OnTransition: func(snap qz.Snapshot, err error) {
			select {
			case transitions <- transitionMsg{Snap: snap, Err: err}:
			case <-done:
			}
		},
	})
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	s.begin()
	return s.waitForTransition()
}

func (s *QuizScreen) begin() {
	s.snap = s.session.Start()
	s.feedback = nil
	s.saveErr = nil
	s.choice = components.NewMultiChoice(s.snap.Question.Question, s.snap.Question.Options)
}

func (s *QuizScreen) waitForTransition() tea.Cmd {
	transitions, done := s.transitions, s.done
	return func() tea.Msg {
		select {
		case msg := <-transitions:
			return msg
		case <-done:
			return nil
		}
	}
}

func (s *QuizScreen) Title() string {
	return "Knowledge Check"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.snap.State == qz.StateFinished:
		return []layout.KeyHint{
			{Key: "R", Description: "Retake"},
			{Key: "Enter", Description: "Done"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "…", Description: "Next question shortly"}}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

// Close abandons the run and cancels a pending auto-advance.
func (s *QuizScreen) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.session != nil {
			s.session.Close()
		}
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}

	switch msg := msg.(type) {
	case transitionMsg:
		s.snap = msg.Snap
		s.feedback = nil
		if msg.Snap.State == qz.StateFinished {
			s.saveErr = msg.Err
			if msg.Err != nil {
				s.deps.Log().Warn("quiz result not saved", "err", msg.Err)
			}
		} else {
			s.choice = components.NewMultiChoice(msg.Snap.Question.Question, msg.Snap.Question.Options)
		}
		return s, s.waitForTransition()

	case components.ChoiceMsg:
		return s, s.answer(msg.Index)

	case tea.KeyMsg:
		if s.snap.State == qz.StateFinished {
			switch msg.String() {
			case "r", "R":
				s.begin()
				return s, nil
			case "enter":
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) answer(idx int) tea.Cmd {
	fb, err := s.session.Answer(idx)
	if err != nil {
		s.deps.Log().Debug("quiz answer rejected", "index", idx, "err", err)
		return nil
	}
	if fb.Ignored {
		return nil
	}
	s.feedback = &fb
	s.choice.Reveal(idx, fb.CorrectIndex)
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	if s.session == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.errMsg))
	}
	if s.snap.State == qz.StateFinished {
		return s.renderResult(width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	progressLine := fmt.Sprintf("Question %d of %d", s.snap.Index+1, s.snap.Total)
	scoreLine := fmt.Sprintf("Score %d", s.snap.Score)
	gap := max(cw-lipgloss.Width(progressLine)-lipgloss.Width(scoreLine), 1)
	b.WriteString(theme.Dim.Render(progressLine) + strings.Repeat(" ", gap) + theme.Section.Render(scoreLine))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(s.snap.Index)/float64(s.snap.Total), false, cw).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(cw))

	if s.feedback != nil {
		b.WriteString("\n")
		if s.feedback.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(s.feedback.Explanation))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderResult(width, height int) string {
	cw := components.ContentWidth(width)
	pct := s.snap.Percentage()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You scored %d / %d", s.snap.Score, s.snap.Total)))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", pct/100, true, cw).WithFill(resultColor(pct)).View())
	b.WriteString("\n\n")

	p := s.deps.Tracker.Profile()
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Rank: %s · Level %d", p.Rank, p.Level)))
	if p.Rank != progress.RankEdgeGrandmaster && s.snap.Score < s.snap.Total {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("A perfect score counts toward Edge Grandmaster."))
	}
	if s.saveErr != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render("Result not saved: " + s.saveErr.Error()))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Panel(lipgloss.NewStyle().Width(cw-4).Align(lipgloss.Center).Render(b.String()), cw))
}

func resultColor(pct float64) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 50:
		return theme.Warning
	default:
		return theme.Error
	}
}
