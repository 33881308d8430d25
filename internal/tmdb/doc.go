// Package tmdb provides an HTTP client for the movie catalog API (TMDB v3).
//
// # Overview
//
// The client covers the two read-only listings marquee needs:
//
//   - GET /discover/movie?sort_by=popularity.desc: popular movies, used when
//     there is no search text
//   - GET /search/movie?query=<text>: title search
//
// Client.Endpoint picks between them so callers only pass the raw query.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json
//   - Set Authorization: Bearer <api key> when a key is configured
//   - Set User-Agent: marquee/<version>
//
// The API key comes from configuration and is passed in through Options;
// the package never reads the environment.
//
// # Error Handling
//
//   - Non-2xx responses return *APIError with the status code and, when the
//     body has one, the API's status_message
//   - Malformed JSON returns an error wrapping "decode response"
//   - Network failures return an error wrapping "execute request"
//
// A 2xx body can still report failure through the legacy Response/Error
// fields; ListResponse.Failed exposes that flag and leaves interpretation to
// the caller.
package tmdb
