package progress

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/apperr"
	"github.com/abhisek/cfdroid/internal/store"
)

func TestRecordView(t *testing.T) {
	var recents []string
	recents = RecordView(recents, "pages")
	recents = RecordView(recents, "workers")
	recents = RecordView(recents, "pages")

	assert.Equal(t, []string{"pages", "workers"}, recents)
	assert.Equal(t, 50.0, ComputeCoverage(recents, 4))
}

func TestRecordViewDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c"}
	out := RecordView(in, "c")
	assert.Equal(t, []string{"a", "b", "c"}, in)
	assert.Equal(t, []string{"c", "a", "b"}, out)
}

func TestRecordViewIdempotent(t *testing.T) {
	once := RecordView([]string{"a", "b"}, "x")
	twice := RecordView(once, "x")
	assert.Equal(t, once, twice)
}

func TestRecordViewCapsAndOrders(t *testing.T) {
	var recents []string
	for i := range 25 {
		id := fmt.Sprintf("t%d", i%13)
		recents = RecordView(recents, id)

		require.LessOrEqual(t, len(recents), MaxRecents)
		require.Equal(t, id, recents[0])

		seen := map[string]bool{}
		for _, r := range recents {
			require.False(t, seen[r], "duplicate %q in %v", r, recents)
			seen[r] = true
		}
	}
}

func TestComputeCoverage(t *testing.T) {
	tests := []struct {
		name    string
		recents int
		size    int
		want    float64
	}{
		{"empty catalog", 3, 0, 0},
		{"negative catalog", 3, -1, 0},
		{"none viewed", 0, 4, 0},
		{"quarter", 1, 4, 25},
		{"capped", 10, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCoverage(make([]string, tt.recents), tt.size))
		})
	}

	prev := 0.0
	for n := range 12 {
		c := ComputeCoverage(make([]string, n), 7)
		assert.GreaterOrEqual(t, c, prev)
		assert.LessOrEqual(t, c, 100.0)
		prev = c
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		coverage   float64
		score, tot int
		want       Rank
	}{
		{95, 6, 6, RankEdgeGrandmaster},
		{90, 6, 6, RankEdgeGrandmaster},
		{95, 5, 6, RankEdgeMaster},
		{95, 0, 0, RankEdgeMaster},
		{71, 6, 6, RankEdgeMaster},
		{70, 6, 6, RankSeniorArchitect},
		{41, 0, 6, RankSeniorArchitect},
		{40, 0, 6, RankCloudBuilder},
		{11, 0, 0, RankCloudBuilder},
		{10, 6, 6, RankGuest},
		{0, 0, 0, RankGuest},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%d_%d", tt.coverage, tt.score, tt.tot), func(t *testing.T) {
			assert.Equal(t, tt.want, RankFor(tt.coverage, tt.score, tt.tot))
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(0, 0))
	assert.Equal(t, 1, Level(1, 0))
	assert.Equal(t, 2, Level(2, 0))
	assert.Equal(t, 2, Level(0, 1))  // floor(1.5) = 1
	assert.Equal(t, 4, Level(0, 2))  // 3 + 1
	assert.Equal(t, 9, Level(10, 2)) // 5 + 3 + 1
	assert.Equal(t, 1, Level(-4, -2))

	for n := range 12 {
		for s := range 8 {
			l := Level(n, s)
			require.GreaterOrEqual(t, l, 1)
			require.GreaterOrEqual(t, Level(n+1, s), l)
			require.GreaterOrEqual(t, Level(n, s+1), l)
		}
	}
}

func TestNextRank(t *testing.T) {
	ladder := []Rank{RankGuest, RankCloudBuilder, RankSeniorArchitect, RankEdgeMaster, RankEdgeGrandmaster}
	for i, r := range ladder[:len(ladder)-1] {
		next, req, ok := NextRank(r)
		require.True(t, ok, r)
		assert.Equal(t, ladder[i+1], next)
		assert.NotEmpty(t, req)
	}
	_, _, ok := NextRank(RankEdgeGrandmaster)
	assert.False(t, ok)
}

// failingStore fails every UpdateMetadata call.
type failingStore struct {
	store.MetadataStore
}

func (failingStore) UpdateMetadata(context.Context, string, store.MetadataPatch) error {
	return errors.New("disk full")
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestTrackerPersistsRecents(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	tr := NewTracker(st.MetadataStore(), "s1", 4)
	require.NoError(t, tr.Load(ctx))

	for _, id := range []string{"pages", "workers", "pages"} {
		_, err := tr.RecordView(ctx, id)
		require.NoError(t, err)
	}

	reloaded := NewTracker(st.MetadataStore(), "s1", 4)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"pages", "workers"}, reloaded.Recents())
	assert.Equal(t, 50.0, reloaded.Coverage())
}

func TestTrackerRejectsEmptyTopic(t *testing.T) {
	st := openStore(t)
	tr := NewTracker(st.MetadataStore(), "s1", 4)

	recents, err := tr.RecordView(context.Background(), "  ")
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, recents)
	assert.Empty(t, tr.Recents())
}

func TestTrackerKeepsStateOnPersistFailure(t *testing.T) {
	st := openStore(t)
	tr := NewTracker(failingStore{st.MetadataStore()}, "s1", 4)

	recents, err := tr.RecordView(context.Background(), "d1")
	var pErr *apperr.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, []string{"d1"}, recents)
	assert.Equal(t, []string{"d1"}, tr.Recents())

	err = tr.RecordQuizResult(context.Background(), 2, 3)
	require.ErrorAs(t, err, &pErr)
	require.NotNil(t, tr.Profile().Quiz)
	assert.Equal(t, 2, tr.Profile().Quiz.Score)
}

func TestTrackerProfile(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	fixed := time.UnixMilli(1_700_000_000_000)

	tr := NewTracker(st.MetadataStore(), "s1", 4, WithClock(func() time.Time { return fixed }))
	for _, id := range []string{"pages", "workers", "ai", "d1"} {
		_, err := tr.RecordView(ctx, id)
		require.NoError(t, err)
	}
	require.NoError(t, tr.RecordQuizResult(ctx, 2, 2))

	p := tr.Profile()
	assert.Equal(t, 100.0, p.Coverage)
	assert.Equal(t, RankEdgeGrandmaster, p.Rank)
	assert.Equal(t, 4/2+3+1, p.Level)

	data, err := st.MetadataStore().Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, data.Metadata.QuizResult)
	assert.Equal(t, fixed.UnixMilli(), data.Metadata.QuizResult.Timestamp)

	// A newer run replaces the stored result.
	require.NoError(t, tr.RecordQuizResult(ctx, 1, 2))
	data, err = st.MetadataStore().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, data.Metadata.QuizResult.Score)
	assert.Equal(t, RankEdgeMaster, tr.Profile().Rank)
}

func TestTrackerRebind(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	tr := NewTracker(st.MetadataStore(), "s1", 4)
	_, err := tr.RecordView(ctx, "r2")
	require.NoError(t, err)
	require.NoError(t, tr.RecordQuizResult(ctx, 1, 2))

	tr.Rebind("s2")
	assert.Equal(t, "s2", tr.SessionID())
	assert.Empty(t, tr.Recents())
	assert.Nil(t, tr.Profile().Quiz)

	_, err = tr.RecordView(ctx, "kv")
	require.NoError(t, err)

	fresh, err := st.MetadataStore().Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, []string{"kv"}, fresh.Metadata.Recents)

	old, err := st.MetadataStore().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, old.Metadata.Recents, "the old session is untouched")
}
