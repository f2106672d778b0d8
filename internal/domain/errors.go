package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a request whose uploaded image or form fields
	// could not be read.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyResult marks a successful provider call that returned no
	// image artifacts.
	ErrEmptyResult = errors.New("provider returned no artifacts")
	// ErrUnreachable marks a network-level failure reaching the provider.
	ErrUnreachable = errors.New("provider unreachable")
)

// UpstreamError reports a non-2xx response from the generation provider. The
// status and body are surfaced to the caller verbatim.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider status %d: %s", e.Status, e.Body)
}
