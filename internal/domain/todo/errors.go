package todo

import "errors"

var (
	// ErrTodoNotFound indicates the todo doesn't exist for the owner.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrInvalidInput indicates invalid input for todo operations.
	ErrInvalidInput = errors.New("invalid todo input")
)
