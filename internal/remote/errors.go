package remote

import (
	"errors"
	"fmt"
)

// NetworkError means the request could not be sent or its response not received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError means the service answered with a non-success status, or accepted a
// write but echoed back a different value.
type BackendError struct {
	Op     string
	Status int
	Reason string
}

func (e *BackendError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: backend status %d: %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s: backend status %d", e.Op, e.Status)
}

// ParseError means the response body was not the expected JSON shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind names the failure class of err for logs: "network", "backend", "parse" or "other".
func Kind(err error) string {
	var ne *NetworkError
	var be *BackendError
	var pe *ParseError
	switch {
	case errors.As(err, &ne):
		return "network"
	case errors.As(err, &be):
		return "backend"
	case errors.As(err, &pe):
		return "parse"
	default:
		return "other"
	}
}
