package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnknownOperation indicates a call named an operation that is not registered.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidArgument indicates a call argument failed validation.
	ErrInvalidArgument = errors.New("invalid argument")
)
