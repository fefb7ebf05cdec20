package jsonval

import "errors"

// Predefined errors for the jsonval package.
var (
	// ErrInvalidJSON indicates that a document could not be parsed as JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
)
