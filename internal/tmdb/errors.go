package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey indicates no bearer token was configured.
	ErrMissingAPIKey = errors.New("tmdb api key is not set")
	// ErrInvalidBaseURL indicates the configured base URL cannot be used.
	ErrInvalidBaseURL = errors.New("invalid tmdb base url")
)

// APIError is returned when the API answers with a non-success status.
type APIError struct {
	StatusCode    int
	StatusMessage string
	Endpoint      string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusMessage != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.StatusMessage)
	}
	return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.StatusCode)
}

// IsUnauthorized reports whether the API rejected the credentials.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the endpoint or resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
