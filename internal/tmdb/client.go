package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the movie catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      Doer
	apiKey    string
	userAgent string
	logger    zerolog.Logger
}

const (
	// DefaultBaseURL is the v3 API root.
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	defaultUserAgent = "marquee/dev"

	// errorBodyLimit bounds how much of a failed response is read for its
	// status_message.
	errorBodyLimit = 64 << 10
)

// Options configure a Client.
type Options struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration // zero leaves the transport default in place
	UserAgent string
	HTTP      Doer // overrides the default *http.Client
	Logger    zerolog.Logger
}

// NewClient builds a Client from opts. A missing API key is not an error:
// requests are sent without credentials and fail authorization upstream.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	doer := opts.HTTP
	if doer == nil {
		doer = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		opts.Logger.Warn().Err(ErrMissingAPIKey).Msg("requests will not be authorized")
	}

	return &Client{
		baseURL:   base,
		http:      doer,
		apiKey:    apiKey,
		userAgent: userAgent,
		logger:    opts.Logger,
	}, nil
}

// HasAPIKey reports whether a bearer token is configured.
func (c *Client) HasAPIKey() bool {
	return c != nil && c.apiKey != ""
}

// Endpoint returns the URL used for query: the popularity-sorted discover
// listing when query is empty, otherwise a title search.
func (c *Client) Endpoint(query string) *url.URL {
	if query == "" {
		u := c.baseURL.JoinPath("discover", "movie")
		u.RawQuery = "sort_by=popularity.desc"
		return u
	}
	u := c.baseURL.JoinPath("search", "movie")
	u.RawQuery = "query=" + encodeQuery(query)
	return u
}

// Discover retrieves the catalog sorted by popularity.
func (c *Client) Discover(ctx context.Context) (*ListResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.list(ctx, c.Endpoint(""))
}

// Search retrieves movies whose title matches query.
func (c *Client) Search(ctx context.Context, query string) (*ListResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	return c.list(ctx, c.Endpoint(query))
}

func (c *Client) list(ctx context.Context, endpoint *url.URL) (*ListResponse, error) {
	var payload ListResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, endpoint *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("path", endpoint.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("catalog request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(endpoint.Path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(path string, resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: path}
	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.StatusMessage = strings.TrimSpace(payload.StatusMessage)
	}
	return apiErr
}

// encodeQuery percent-encodes a query value with spaces as %20.
func encodeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidBaseURL, raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
