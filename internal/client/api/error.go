package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the backend answers with a non-2xx status.
// Message carries the server-supplied error text when present, otherwise a
// generic fallback derived from the status code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// TransportError wraps failures that happened before any HTTP status was
// received (connection refused, DNS failure, timeout).
type TransportError struct {
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("api: request timed out: %v", e.Err)
	}
	return fmt.Sprintf("api: server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a StatusError carrying 401.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// ErrorMessage extracts the server-supplied message from err, or returns
// fallback when err carries none.
func ErrorMessage(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
