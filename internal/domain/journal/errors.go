package journal

import "errors"

var (
	// ErrEntryNotFound indicates no entry exists for the date.
	ErrEntryNotFound = errors.New("journal entry not found")
	// ErrInvalidInput indicates invalid input for journal operations.
	ErrInvalidInput = errors.New("invalid journal input")
)
