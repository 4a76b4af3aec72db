package sourcedump

import "errors"

var (
	// ErrDumpNotFound indicates the source dump doesn't exist for the owner.
	ErrDumpNotFound = errors.New("source dump not found")
	// ErrInvalidInput indicates invalid input for source dump operations.
	ErrInvalidInput = errors.New("invalid source dump input")
)
