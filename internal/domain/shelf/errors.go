package shelf

import "errors"

var (
	// ErrItemNotFound indicates the item doesn't exist on the shelf.
	ErrItemNotFound = errors.New("shelf item not found")
	// ErrInvalidInput indicates invalid input for shelf operations.
	ErrInvalidInput = errors.New("invalid shelf input")
)
