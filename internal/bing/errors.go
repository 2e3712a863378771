package bing

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed means the request could not be completed (no connection, DNS, reset)
	ErrRequestFailed = errors.New("request failed")

	// ErrTimeout means the request did not complete in time
	ErrTimeout = errors.New("request timed out")

	// ErrDecode means the archive response could not be decoded
	ErrDecode = errors.New("decoding failed")

	// ErrInvalidResponse means the response was well formed but unusable
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInvalidImage means downloaded bytes are not an image
	ErrInvalidImage = errors.New("data is not a valid image")
)

// StatusError is a non-200 HTTP response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Code)
}
