package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnknownTopic marks a request for a topic id that is not in the catalog.
	// Surfaced before any cache or lock access.
	ErrUnknownTopic = errors.New("unknown topic id")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
