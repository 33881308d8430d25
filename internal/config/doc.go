// Package config loads marquee's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. Environment variables override whatever the file set
//
// # Default Values
//
//   - API base URL: https://api.themoviedb.org/3
//   - Request timeout: 10s (0 leaves the transport default)
//   - Search debounce: 500ms (0 also means 500ms)
//   - Log file: ~/.local/state/marquee/marquee.log
//
// # TOML Format
//
//	[tmdb]
//	base_url = "https://api.themoviedb.org/3"
//	api_key = "<v4 read access token>"
//	timeout = "10s"
//
//	[search]
//	debounce = "500ms"
//	discard_stale = false
//	filter = "Rating >= 6"
//
//	[logging]
//	level = "info"     # debug, info, warn, error
//	format = "console" # console, json
//	file = "~/.local/state/marquee/marquee.log"
//
// # Environment
//
// Every key can be set as MARQUEE_<SECTION>_<KEY>, for example
// MARQUEE_SEARCH_DEBOUNCE=250ms. The API key is also read from TMDB_API_KEY;
// MARQUEE_TMDB_API_KEY takes precedence when both are set.
//
// A missing API key is not a load error. Requests go out unauthenticated and
// the API rejects them, which surfaces as a fetch error in the UI.
package config
