// Package quiz runs a multiple-choice quiz as a small state machine with
// a delayed auto-advance after each answer.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/cfdroid/internal/apperr"
	"github.com/abhisek/cfdroid/internal/catalog"
)

// DefaultFeedbackDelay is how long answer feedback is shown before the
// quiz moves on.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// ErrNotInProgress is returned by Answer outside of a running quiz.
var ErrNotInProgress = errors.New("quiz is not in progress")

// State is the quiz lifecycle phase.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ResultRecorder persists a finished run.
type ResultRecorder interface {
	RecordQuizResult(ctx context.Context, score, total int) error
}

// Options configures a Session. Zero values use defaults.
type Options struct {
	FeedbackDelay time.Duration
	Scheduler     Scheduler
	Recorder      ResultRecorder

	// OnTransition is called after every auto-advance with the new
	// snapshot. err is the recorder error when the quiz just finished.
	// It runs on the scheduler's goroutine.
	OnTransition func(snap Snapshot, err error)

	Logger *slog.Logger
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	State    State
	Index    int
	Total    int
	Score    int
	Selected int // -1 when no answer is pending
	Question catalog.QuizQuestion
}

// Percentage is score/total*100, valid once finished.
func (s Snapshot) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total) * 100
}

// Feedback describes the outcome of an Answer call.
type Feedback struct {
	Correct      bool
	CorrectIndex int
	Explanation  string

	// Ignored is set when an answer was already pending for the current
	// question; the call changed nothing.
	Ignored bool
}

// Session is one quiz run. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	questions []catalog.QuizQuestion
	opts      Options

	state    State
	index    int
	score    int
	selected int

	// gen invalidates timers scheduled by an earlier run.
	gen   uint64
	timer Stopper
}

// NewSession creates a quiz over questions. An empty question list is a
// configuration error.
func NewSession(questions []catalog.QuizQuestion, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, &apperr.ConfigurationError{Feature: "quiz", Reason: "no questions available"}
	}
	if err := catalog.ValidateQuestions(questions); err != nil {
		return nil, &apperr.ConfigurationError{Feature: "quiz", Reason: err.Error()}
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		questions: slices.Clone(questions),
		opts:      opts,
		selected:  -1,
	}, nil
}

// Start begins a run from the first question. It is valid before the
// first run and after a finished one; calling it mid-run restarts.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.state = StateInProgress
	s.index = 0
	s.score = 0
	s.selected = -1
	return s.snapshotLocked()
}

// Answer submits option idx for the current question and schedules the
// advance to the next question.
func (s *Session) Answer(idx int) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return Feedback{}, ErrNotInProgress
	}
	q := s.questions[s.index]
	if s.selected >= 0 {
		return Feedback{
			Correct:      s.selected == q.CorrectIndex,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Ignored:      true,
		}, nil
	}
	if idx < 0 || idx >= len(q.Options) {
		return Feedback{}, &apperr.ValidationError{
			Field:  "answer",
			Reason: fmt.Sprintf("option %d out of range [0, %d)", idx, len(q.Options)),
		}
	}

	s.selected = idx
	correct := idx == q.CorrectIndex
	if correct {
		s.score++
	}

	gen := s.gen
	s.timer = s.opts.Scheduler.AfterFunc(s.opts.FeedbackDelay, func() {
		s.advance(gen)
	})

	return Feedback{
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}, nil
}

// advance moves past the answered question. Timers from an earlier
// generation are ignored.
func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state != StateInProgress || s.selected < 0 {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.selected = -1

	finished := s.index == len(s.questions)-1
	if finished {
		s.state = StateFinished
	} else {
		s.index++
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	var err error
	if finished {
		s.opts.Logger.Info("quiz finished", "score", snap.Score, "total", snap.Total)
		if s.opts.Recorder != nil {
			err = s.opts.Recorder.RecordQuizResult(context.Background(), snap.Score, snap.Total)
		}
	}
	if s.opts.OnTransition != nil {
		s.opts.OnTransition(snap, err)
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Percentage returns score/total*100 and whether the quiz has finished.
func (s *Session) Percentage() (float64, bool) {
	snap := s.Snapshot()
	return snap.Percentage(), snap.State == StateFinished
}

// Reset cancels any pending advance and returns to NotStarted.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.state = StateNotStarted
	s.index = 0
	s.score = 0
	s.selected = -1
}

// Close abandons the run. A pending advance is cancelled, nothing is
// recorded, and the session is back in NotStarted so Start can begin a
// new run.
func (s *Session) Close() {
	s.Reset()
}

func (s *Session) cancelTimerLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Index:    s.index,
		Total:    len(s.questions),
		Score:    s.score,
		Selected: s.selected,
	}
	if s.state == StateInProgress {
		snap.Question = s.questions[s.index]
	}
	return snap
}
