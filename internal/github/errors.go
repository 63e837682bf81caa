package github

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized      = errors.New("unauthorized: token expired or invalid")
	ErrRateLimited       = errors.New("forbidden: check your permissions and rate limits")
	ErrNotFound          = errors.New("not found")
	ErrNotAFile          = errors.New("not a file")
	ErrInvalidRepoFormat = errors.New("invalid repository format")
)

// APIError carries the platform's message for any non-success response
// that does not map to a more specific error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}
