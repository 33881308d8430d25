package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/filter"
	"github.com/five82/marquee/internal/tmdb"
)

// Source lists movies from the catalog. *tmdb.Client implements it.
type Source interface {
	Discover(ctx context.Context) (*tmdb.ListResponse, error)
	Search(ctx context.Context, query string) (*tmdb.ListResponse, error)
}

var _ Source = (*tmdb.Client)(nil)

// Fetcher turns a query into an Outcome. It never returns an error: every
// failure is mapped to a user-facing message and logged.
type Fetcher struct {
	source Source
	filter *filter.Filter
	logger zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFilter narrows successful results with f.
func WithFilter(f *filter.Filter) Option {
	return func(fe *Fetcher) {
		fe.filter = f
	}
}

// NewFetcher returns a Fetcher backed by source.
func NewFetcher(source Source, logger zerolog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{source: source, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch runs one catalog request. An empty query lists popular movies;
// anything else searches by title.
func (f *Fetcher) Fetch(ctx context.Context, query string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error().Str("query", query).Interface("panic", r).Msg("error fetching movies")
			out = Failure(query, MsgTryLater)
		}
	}()

	resp, err := f.list(ctx, query)
	if err != nil {
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) {
			f.logger.Error().Err(err).Str("query", query).Int("status", apiErr.StatusCode).Msg("failed to fetch movies")
			return Failure(query, MsgFetchFailed)
		}
		f.logger.Error().Err(err).Str("query", query).Msg("error fetching movies")
		return Failure(query, MsgTryLater)
	}

	if resp.Failed() {
		msg := resp.Error
		if msg == "" {
			msg = MsgFetchFailed
		}
		f.logger.Warn().Str("query", query).Str("error", resp.Error).Msg("catalog reported failure")
		return Failure(query, msg)
	}

	movies := resp.Results
	if f.filter != nil {
		movies = f.filter.Apply(movies)
	}
	f.logger.Debug().Str("query", query).Int("results", len(movies)).Msg("fetched movies")
	return Success(query, movies)
}

func (f *Fetcher) list(ctx context.Context, query string) (*tmdb.ListResponse, error) {
	if f.source == nil {
		return nil, fmt.Errorf("no catalog source configured")
	}
	var (
		resp *tmdb.ListResponse
		err  error
	)
	if query == "" {
		resp, err = f.source.Discover(ctx)
	} else {
		resp, err = f.source.Search(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response")
	}
	return resp, nil
}
