// Package ui is the Bubble Tea front end for marquee.
//
// The screen has four stacked parts: a one-line header (mode, status and the
// active filter), the search input, the results viewport and a footer with
// key hints. A help overlay replaces everything while open.
//
// # Event Flow
//
//  1. Init dispatches the mount fetch with an empty query (popular movies).
//  2. Each keystroke updates state.Store.SearchText and pushes the input value
//     into a debounce.Debouncer.
//  3. When typing pauses the debouncer sends queryDebouncedMsg into the
//     running program. If the value differs from the last committed one, a
//     fetch command is dispatched after state.Store.Begin.
//  4. The fetch command always yields a fetchResultMsg, even when the fetcher
//     panics, and Update settles it into the store.
//
// Enter skips the rest of the quiet window. Esc clears the input, which
// debounces back to the popular list.
//
// RenderResults is a pure function of the view state so it can be tested
// without a terminal.
//
// # Key Bindings
//
// Printable keys always go to the input, so commands use control and
// function keys:
//
//   - enter: search now
//   - esc: clear the search
//   - up/down, pgup/pgdown: scroll results
//   - ctrl+t: cycle theme (saved to prefs)
//   - ctrl+o: toggle year and rating columns (saved to prefs)
//   - f1: help
//   - ctrl+c: quit
package ui
