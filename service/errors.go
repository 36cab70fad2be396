package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned before any upstream call when q is blank.
	ErrEmptyQuery = errors.New("query parameter \"q\" is required")

	// ErrAllUpstreamsFailed is returned when the primary and every fallback failed.
	ErrAllUpstreamsFailed = errors.New("all search instances are unavailable")

	// ErrUnexpectedStatus marks a non-200 upstream reply.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")

	// ErrMalformedBody marks an upstream body that is not a usable JSON object.
	ErrMalformedBody = errors.New("malformed upstream body")
)

// UpstreamError is the failure reason for one target.
type UpstreamError struct {
	Target     string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s (%s): status %d: %v", e.Target, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s (%s): %v", e.Target, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
