package cogsearch

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the client. Use errors.Is() to check.
var (
	// ErrUnauthorized signals rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound signals a missing index.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate index.
	ErrAlreadyExists = errors.New("already exists")
)

// APIError is an error response returned by the search service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("search service: %s (status %d, code %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("search service: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap maps HTTP status codes to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	}
	return nil
}
