package orchestrator

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by GetIntent when the Orchestrator has no record
// of the intent.
var ErrNotFound = errors.New("intent not found")

// StatusError is a non-200 response other than a detail 404.
type StatusError struct {
	Code int
	Path string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("orchestrator returned status %d for %s: %s", e.Code, e.Path, e.Body)
	}
	return fmt.Sprintf("orchestrator returned status %d for %s", e.Code, e.Path)
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Temporary reports whether a later refresh may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

// DecodeError wraps a malformed response body.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
