package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Options{
		BaseURL: server.URL + "/3",
		APIKey:  "secret-token",
		Timeout: 2 * time.Second,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	return c
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantPath string
		wantHost string
	}{
		{name: "default", raw: "", wantPath: "/3", wantHost: "api.themoviedb.org"},
		{name: "trailing slash trimmed", raw: "https://example.com/api/3/", wantPath: "/api/3", wantHost: "example.com"},
		{name: "query and fragment dropped", raw: "http://example.com:8080/3?x=1#frag", wantPath: "/3", wantHost: "example.com:8080"},
		{name: "no scheme", raw: "example.com/3", wantErr: true},
		{name: "bad scheme", raw: "ftp://example.com", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := parseBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidBaseURL))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, u.Path)
			assert.Equal(t, tt.wantHost, u.Host)
			assert.Empty(t, u.RawQuery)
			assert.Empty(t, u.Fragment)
		})
	}
}

func TestEndpoint_SelectsDiscoverOrSearch(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "https://example.com/3", Logger: zerolog.Nop()})
	require.NoError(t, err)

	discover := c.Endpoint("")
	assert.Equal(t, "https://example.com/3/discover/movie?sort_by=popularity.desc", discover.String())

	search := c.Endpoint("star wars & more")
	assert.Equal(t, "/3/search/movie", search.Path)
	assert.Equal(t, "query=star%20wars%20%26%20more", search.RawQuery)
	assert.Equal(t, "star wars & more", search.Query().Get("query"))

	// Whitespace is a real query, not "no query".
	assert.Equal(t, "/3/search/movie", c.Endpoint(" ").Path)
}

func TestClient_DiscoverSendsHeaders(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAccept, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListResponse{
			Page:    1,
			Results: []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.Discover(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].Title)

	assert.Equal(t, "/3/discover/movie", gotPath)
	assert.Equal(t, "sort_by=popularity.desc", gotQuery)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.True(t, strings.HasPrefix(gotUA, "marquee/"), "User-Agent = %q", gotUA)
}

func TestClient_SearchEncodesQuery(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	resp, err := c.Search(context.Background(), "Amélie & co")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, "/3/search/movie", gotPath)
	assert.Equal(t, "Amélie & co", gotQuery)
}

func TestClient_SearchRejectsEmptyQuery(t *testing.T) {
	c, err := NewClient(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "")
	require.Error(t, err)
}

func TestClient_NoAuthorizationWithoutKey(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.False(t, c.HasAPIKey())

	_, err = c.Discover(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClient_HTTPErrorCarriesStatusMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`))
	})

	_, err := c.Discover(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsUnauthorized())
	assert.False(t, apiErr.IsNotFound())
	assert.Contains(t, apiErr.StatusMessage, "Invalid API key")
	assert.Contains(t, err.Error(), "returned status 401")
}

func TestClient_HTTPErrorWithoutJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	_, err := c.Search(context.Background(), "x")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.StatusMessage)
}

func TestClient_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	})

	_, err := c.Discover(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_InBandFailureDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"boom"}`))
	})

	resp, err := c.Discover(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Failed())
	assert.Equal(t, "boom", resp.Error)
	assert.Nil(t, resp.Results)
}

func TestClient_NetworkError(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = c.Discover(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}
