package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports bad user input, caught before any I/O.
// Messages lists every violated rule, not just the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

// RemoteError reports a failed call to the catalog service.
// Status is the HTTP status code, 0 for transport or decoding failures.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	return "failed to " + e.Op
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Detail includes the underlying cause, for logs.
func (e *RemoteError) Detail() string {
	if e.Status > 0 {
		return fmt.Sprintf("failed to %s: HTTP %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

// PersistenceError reports a failed write to the local store substrate.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFoundError reports an entity that exists neither remotely nor locally.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// FormatError reports an import payload that is not a JSON array.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid file format: %s: %v", e.Reason, e.Err)
	}
	return "invalid file format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
