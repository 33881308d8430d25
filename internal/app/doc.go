// Package app is the composition root for marquee.
//
// Bootstrap wires configuration, logging, the TMDB client, the optional
// result filter, the catalog fetcher and the view-state store. Run hands the
// result to the Bubble Tea UI; the one-shot CLI commands use Env.Query, which
// goes through the same store and fetcher.
//
//	Run()
//	 ├─> config.Load()          TOML file + MARQUEE_* env
//	 ├─> logging.OpenFile()     TUI logs go to a file, never the terminal
//	 ├─> filter.Compile()       optional expr-lang result filter
//	 ├─> tmdb.NewClient()       bearer-token HTTP client
//	 ├─> catalog.NewFetcher()   response -> Outcome mapping
//	 ├─> state.NewStore()       stale policy from search.discard_stale
//	 ├─> prefs.Load()           theme and detail columns
//	 └─> ui.Run()               blocks until quit or ctx cancel
//
// Configuration and filter errors are fatal. A missing API key only logs a
// warning: requests go out unauthenticated and the resulting 401 is shown in
// the UI as a fetch failure.
package app
