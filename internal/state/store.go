package state

import (
	"context"
	"sync"
	"time"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/tmdb"
)

// Phase is the coarse state of the view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// StalePolicy decides what happens to a response that arrives after a newer
// fetch was already applied.
type StalePolicy int

const (
	// ApplyInArrivalOrder applies every response as it arrives, so a slow
	// older request can overwrite a newer result.
	ApplyInArrivalOrder StalePolicy = iota
	// DiscardStale drops responses older than the last applied one.
	DiscardStale
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	SearchText    string
	DebouncedText string
	Movies        []tmdb.Movie
	Loading       bool
	ErrorMsg      string
	Phase         Phase
	LastOutcome   catalog.Kind
	InFlight      int
	LastUpdated   time.Time
}

// Ticket identifies one dispatched fetch.
type Ticket struct {
	Seq   uint64
	Query string
}

// Fetcher produces outcomes for queries. *catalog.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, query string) catalog.Outcome
}

// Store holds the view state. Loading is true exactly while at least one
// fetch is in flight.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	policy   StalePolicy
	seq      uint64
	applied  uint64
}

// NewStore returns an idle store using policy for late responses.
func NewStore(policy StalePolicy) *Store {
	return &Store{policy: policy}
}

// SetSearchText records the raw input value.
func (s *Store) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SearchText = text
}

// SetDebounced records the debounced value and reports whether it changed.
// Only a change should trigger a fetch.
func (s *Store) SetDebounced(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.DebouncedText == text {
		return false
	}
	s.snapshot.DebouncedText = text
	return true
}

// Begin marks a fetch for query as in flight.
func (s *Store) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.snapshot.InFlight++
	s.snapshot.Loading = true
	s.snapshot.Phase = PhaseLoading
	s.snapshot.LastOutcome = catalog.KindLoading
	s.snapshot.ErrorMsg = ""
	return Ticket{Seq: s.seq, Query: query}
}

// Settle records the result for t and reports whether it was applied to the
// visible list. In-flight accounting happens either way.
func (s *Store) Settle(t Ticket, out catalog.Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.InFlight > 0 {
		s.snapshot.InFlight--
	}
	s.snapshot.Loading = s.snapshot.InFlight > 0
	if !s.snapshot.Loading {
		s.snapshot.Phase = PhaseSettled
	}

	if s.policy == DiscardStale && t.Seq < s.applied {
		return false
	}
	if t.Seq > s.applied {
		s.applied = t.Seq
	}

	switch out.Kind {
	case catalog.KindSuccess:
		s.snapshot.Movies = cloneMovies(out.Movies)
		s.snapshot.ErrorMsg = ""
	default:
		s.snapshot.Movies = nil
		s.snapshot.ErrorMsg = out.Message
		if s.snapshot.ErrorMsg == "" {
			s.snapshot.ErrorMsg = catalog.MsgTryLater
		}
	}
	s.snapshot.LastOutcome = out.Kind
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Refresh runs one fetch for query, holding Loading for its duration.
func (s *Store) Refresh(ctx context.Context, f Fetcher, query string) (out catalog.Outcome) {
	t := s.Begin(query)
	out = catalog.Failure(query, catalog.MsgTryLater)
	defer func() { s.Settle(t, out) }()
	out = f.Fetch(ctx, query)
	return out
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Movies = cloneMovies(s.snapshot.Movies)
	return snap
}

func cloneMovies(movies []tmdb.Movie) []tmdb.Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]tmdb.Movie, len(movies))
	copy(dup, movies)
	return dup
}
