package account

import "errors"

var (
	// ErrProfileNotFound indicates the profile doesn't exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUsernameTaken indicates another profile already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidToken indicates an unknown or empty API token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidInput indicates invalid input for account operations.
	ErrInvalidInput = errors.New("invalid account input")
)
