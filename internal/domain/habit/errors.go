package habit

import "errors"

var (
	// ErrHabitNotFound indicates the habit doesn't exist for the owner.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrHabitDeleted indicates the habit is soft deleted.
	ErrHabitDeleted = errors.New("habit is deleted")
	// ErrBeforeCreation indicates a day before the habit existed.
	ErrBeforeCreation = errors.New("day precedes habit creation")
	// ErrFutureDay indicates a day after today.
	ErrFutureDay = errors.New("day is in the future")
	// ErrInvalidInput indicates invalid input for habit operations.
	ErrInvalidInput = errors.New("invalid habit input")
)
