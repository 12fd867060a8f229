package logmeinapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	ErrEmptyBody    = errors.New("empty body")
	ErrMissingHosts = errors.New("missing hosts")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s %s: unexpected status %s: %s", e.Method, e.Endpoint, e.Status, e.Body)
}

// Is maps auth and lookup failures onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError is returned when a 2xx response carries a body that cannot be
// used: empty, not JSON, or lacking a required field.
type DecodeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DecodeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("decode response: %v", e.Err)
	}
	return fmt.Sprintf("decode response: %v (body: %s)", e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0 when err did not
// come from a response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.StatusCode
	}
	return 0
}
