package catalog

import "github.com/five82/marquee/internal/tmdb"

// Kind tags a fetch outcome.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// User-facing messages. Diagnostic detail never reaches these.
const (
	MsgFetchFailed = "Failed to fetch movies"
	MsgTryLater    = "Error fetching movies. Please try again later."
)

// Outcome is the settled result of one fetch.
type Outcome struct {
	Kind    Kind
	Query   string
	Movies  []tmdb.Movie
	Message string
}

// Success builds a success outcome. A nil list becomes an empty one.
func Success(query string, movies []tmdb.Movie) Outcome {
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	return Outcome{Kind: KindSuccess, Query: query, Movies: movies}
}

// Failure builds an error outcome with an empty movie list.
func Failure(query, message string) Outcome {
	return Outcome{Kind: KindError, Query: query, Movies: []tmdb.Movie{}, Message: message}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess
}
