package pomodoro

import "errors"

var (
	// ErrInvalidInput indicates invalid settings or session input.
	ErrInvalidInput = errors.New("invalid pomodoro input")
)
