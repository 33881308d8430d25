// Package catalog maps catalog API responses onto the three outcomes the view
// understands: a movie list, an empty list, or a user-facing error message.
//
// Fetcher.Fetch never returns an error. Transport and HTTP failures, the
// legacy in-band failure flag, malformed JSON and panics in the source all
// settle as an Error outcome with an empty list; the underlying error goes to
// the logger only.
package catalog
