package progress

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/cfdroid/internal/apperr"
	"github.com/abhisek/cfdroid/internal/store"
)

// Profile is the derived view shown on the profile screen.
type Profile struct {
	Recents  []string
	Coverage float64
	Rank     Rank
	Level    int
	Quiz     *store.QuizResult
}

// Tracker keeps one session's progress in memory and writes it through to
// the metadata store. Writes are serialized; when a write fails the
// in-memory value is kept and a *apperr.PersistenceError is returned.
type Tracker struct {
	mu          sync.Mutex
	store       store.MetadataStore
	sessionID   string
	catalogSize int
	logger      *slog.Logger
	now         func() time.Time

	recents []string
	quiz    *store.QuizResult
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) { t.logger = l }
}

// WithClock overrides time.Now for quiz result timestamps.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a tracker for sessionID. Call Load to read the stored
// state before use.
func NewTracker(ms store.MetadataStore, sessionID string, catalogSize int, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:       ms,
		sessionID:   sessionID,
		catalogSize: catalogSize,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Load reads the session's stored progress.
func (t *Tracker) Load(ctx context.Context) error {
	sessionID := t.SessionID()
	data, err := t.store.Get(ctx, sessionID)
	if err != nil {
		return &apperr.PersistenceError{Op: "load progress", Err: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if sessionID != t.sessionID {
		return nil
	}
	t.recents = slices.Clone(data.Metadata.Recents)
	t.quiz = data.Metadata.QuizResult
	return nil
}

// RecordView moves topicID to the front of the recents list and persists
// it. The updated list is returned even when persisting fails.
func (t *Tracker) RecordView(ctx context.Context, topicID string) ([]string, error) {
	if strings.TrimSpace(topicID) == "" {
		t.mu.Lock()
		defer t.mu.Unlock()
		return slices.Clone(t.recents), &apperr.ValidationError{Field: "topic id", Reason: "must not be empty"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.recents = RecordView(t.recents, topicID)
	out := slices.Clone(t.recents)

	patch := store.MetadataPatch{Recents: slices.Clone(t.recents)}
	if err := t.store.UpdateMetadata(ctx, t.sessionID, patch); err != nil {
		t.logger.Warn("recents not persisted", "topic", topicID, "err", err)
		return out, &apperr.PersistenceError{Op: "record view", Err: err}
	}
	return out, nil
}

// RecordQuizResult stores a completed quiz run, replacing any earlier one.
func (t *Tracker) RecordQuizResult(ctx context.Context, score, total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	res := &store.QuizResult{Score: score, Total: total, Timestamp: t.now().UnixMilli()}
	t.quiz = res

	if err := t.store.UpdateMetadata(ctx, t.sessionID, store.MetadataPatch{QuizResult: res}); err != nil {
		t.logger.Warn("quiz result not persisted", "score", score, "total", total, "err", err)
		return &apperr.PersistenceError{Op: "record quiz result", Err: err}
	}
	return nil
}

// SessionID returns the session the tracker writes to.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Rebind points the tracker at a new session with no stored progress.
func (t *Tracker) Rebind(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionID = sessionID
	t.recents = []string{}
	t.quiz = nil
}

// Recents returns a copy of the current recents list.
func (t *Tracker) Recents() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.recents)
}

// Coverage returns the catalog coverage of the current recents list.
func (t *Tracker) Coverage() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ComputeCoverage(t.recents, t.catalogSize)
}

// Profile derives rank and level from the current state.
func (t *Tracker) Profile() Profile {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := Profile{
		Recents:  slices.Clone(t.recents),
		Coverage: ComputeCoverage(t.recents, t.catalogSize),
	}
	score, total := 0, 0
	if t.quiz != nil {
		q := *t.quiz
		p.Quiz = &q
		score, total = q.Score, q.Total
	}
	p.Rank = RankFor(p.Coverage, score, total)
	p.Level = Level(len(t.recents), score)
	return p
}
