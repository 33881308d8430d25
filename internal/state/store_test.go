package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/tmdb"
)

type fetcherFunc func(ctx context.Context, query string) catalog.Outcome

func (f fetcherFunc) Fetch(ctx context.Context, query string) catalog.Outcome {
	return f(ctx, query)
}

func TestStore_InitialSnapshotIsIdle(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)
	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Movies)
	assert.Empty(t, snap.ErrorMsg)
}

func TestStore_SetDebouncedReportsChange(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)

	s.SetSearchText("st")
	assert.Equal(t, "st", s.Snapshot().SearchText)

	assert.True(t, s.SetDebounced("star"))
	assert.False(t, s.SetDebounced("star"))
	assert.True(t, s.SetDebounced(""))
	assert.Equal(t, "", s.Snapshot().DebouncedText)
}

func TestStore_SuccessReplacesListAndClearsError(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)

	t1 := s.Begin("")
	s.Settle(t1, catalog.Failure("", "boom"))
	require.Equal(t, "boom", s.Snapshot().ErrorMsg)

	before := time.Now()
	t2 := s.Begin("a")
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.Empty(t, snap.ErrorMsg, "Begin clears the previous error")

	applied := s.Settle(t2, catalog.Success("a", []tmdb.Movie{{ID: 1, Title: "A"}}))
	require.True(t, applied)

	snap = s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, PhaseSettled, snap.Phase)
	assert.Equal(t, catalog.KindSuccess, snap.LastOutcome)
	assert.Empty(t, snap.ErrorMsg)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "A", snap.Movies[0].Title)
	assert.False(t, snap.LastUpdated.Before(before))
}

func TestStore_ErrorClearsList(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)
	s.Settle(s.Begin(""), catalog.Success("", []tmdb.Movie{{ID: 1}, {ID: 2}}))
	require.Len(t, s.Snapshot().Movies, 2)

	s.Settle(s.Begin("x"), catalog.Failure("x", "Failed to fetch movies"))
	snap := s.Snapshot()
	assert.Empty(t, snap.Movies)
	assert.Equal(t, "Failed to fetch movies", snap.ErrorMsg)
	assert.Equal(t, catalog.KindError, snap.LastOutcome)
}

func TestStore_SnapshotClonesMovies(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)
	s.Settle(s.Begin(""), catalog.Success("", []tmdb.Movie{{ID: 1, Title: "A"}}))

	snap := s.Snapshot()
	snap.Movies[0].Title = "mutated"
	assert.Equal(t, "A", s.Snapshot().Movies[0].Title)
}

func TestStore_OverlappingFetchesKeepLoadingUntilAllSettle(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)

	first := s.Begin("a")
	second := s.Begin("ab")
	assert.Equal(t, 2, s.Snapshot().InFlight)

	s.Settle(second, catalog.Success("ab", []tmdb.Movie{{ID: 2, Title: "AB"}}))
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, PhaseLoading, snap.Phase)

	s.Settle(first, catalog.Success("a", []tmdb.Movie{{ID: 1, Title: "A"}}))
	snap = s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, PhaseSettled, snap.Phase)
	assert.Equal(t, 0, snap.InFlight)
}

func TestStore_StalePolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      StalePolicy
		wantTitle   string
		wantApplied bool
	}{
		// The older, slower response lands last and wins.
		{name: "arrival order", policy: ApplyInArrivalOrder, wantTitle: "A", wantApplied: true},
		{name: "discard stale", policy: DiscardStale, wantTitle: "AB", wantApplied: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.policy)
			older := s.Begin("a")
			newer := s.Begin("ab")

			require.True(t, s.Settle(newer, catalog.Success("ab", []tmdb.Movie{{ID: 2, Title: "AB"}})))
			assert.Equal(t, tt.wantApplied, s.Settle(older, catalog.Success("a", []tmdb.Movie{{ID: 1, Title: "A"}})))

			snap := s.Snapshot()
			require.Len(t, snap.Movies, 1)
			assert.Equal(t, tt.wantTitle, snap.Movies[0].Title)
			assert.False(t, snap.Loading)
		})
	}
}

func TestStore_RefreshHoldsLoadingDuringFetch(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)

	started := make(chan struct{})
	release := make(chan struct{})
	f := fetcherFunc(func(ctx context.Context, query string) catalog.Outcome {
		close(started)
		<-release
		return catalog.Success(query, []tmdb.Movie{{ID: 1, Title: "A"}})
	})

	done := make(chan catalog.Outcome, 1)
	go func() { done <- s.Refresh(context.Background(), f, "") }()

	<-started
	assert.True(t, s.Snapshot().Loading)
	close(release)

	out := <-done
	assert.True(t, out.OK())
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	require.Len(t, snap.Movies, 1)
}

func TestStore_RefreshClearsLoadingOnPanic(t *testing.T) {
	s := NewStore(ApplyInArrivalOrder)
	f := fetcherFunc(func(ctx context.Context, query string) catalog.Outcome {
		panic("boom")
	})

	assert.Panics(t, func() { s.Refresh(context.Background(), f, "q") })

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, catalog.MsgTryLater, snap.ErrorMsg)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "settled", PhaseSettled.String())
}
