// Package state holds the view state for the movie browser.
//
// # Overview
//
// Store keeps the raw search text, the debounced text, the current movie
// list, a loading flag and an error message. The UI is the only writer; the
// mutex keeps Snapshot safe for readers on other goroutines (tests and the
// non-interactive commands).
//
// # Fetch Lifecycle
//
//	t := store.Begin(query)       // Loading = true, error cleared
//	out := fetcher.Fetch(ctx, q)  // runs off the UI loop
//	store.Settle(t, out)          // list or error replaced wholesale
//
// Refresh wraps the three steps and settles in a deferred call, so Loading is
// cleared even when the fetcher panics.
//
// # Overlapping Fetches
//
// Several fetches may be in flight when the user types faster than requests
// complete. Loading stays true until the last of them settles. Responses are
// applied in arrival order by default, which means a slow older request can
// overwrite a newer result. NewStore(DiscardStale) drops any response whose
// ticket is older than the last one applied.
//
// # Update Semantics
//
//	// Success: list replaced, error cleared
//	store.Settle(t, catalog.Success(q, movies))
//
//	// Error: list cleared, message set
//	store.Settle(t, catalog.Failure(q, "Failed to fetch movies"))
package state
