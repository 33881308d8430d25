package tmdb

import (
	"strings"
	"time"
)

const releaseDateLayout = "2006-01-02"

// Movie mirrors a single entry of the results array. Only ID and Title are
// relied on; the remaining fields pass through as received.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
}

// Year returns the release year, or zero when the date is missing or malformed.
func (m Movie) Year() int {
	d := strings.TrimSpace(m.ReleaseDate)
	if d == "" {
		return 0
	}
	t, err := time.Parse(releaseDateLayout, d)
	if err != nil {
		return 0
	}
	return t.Year()
}

// ListResponse mirrors the paged list payload returned by /discover/movie and
// /search/movie.
type ListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`

	// StatusMessage is how the API reports errors alongside a non-2xx status.
	StatusMessage string `json:"status_message,omitempty"`

	// Response and Error follow the in-band convention some movie APIs use
	// to report failure on an HTTP 200.
	Response string `json:"Response,omitempty"`
	Error    string `json:"Error,omitempty"`
}

// Failed reports whether the body carries the in-band failure flag.
func (r ListResponse) Failed() bool {
	return strings.EqualFold(strings.TrimSpace(r.Response), "false")
}
