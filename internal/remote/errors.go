package remote

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("remote: unauthorized")
	ErrUnavailable  = errors.New("remote: service unavailable")
	ErrRejected     = errors.New("remote: request rejected")

	// ErrMalformedResponse marks a 2xx body that could not be decoded.
	ErrMalformedResponse = errors.New("remote: malformed response")
)

// RejectedError is a business failure reported by the remote API, either as
// success:false in the body or as a 4xx response.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("remote rejected request (status %d): %s", e.StatusCode, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// StatusError is a 5xx response from the remote API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}
