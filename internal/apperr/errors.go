// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound marks a requested document or resource that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks invocation-level misconfiguration (bad path,
	// bad flag value). It is the only class that aborts a run.
	ErrInvalidInput = errors.New("invalid input")
)
