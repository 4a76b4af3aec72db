package feedback

import "errors"

// ErrEmptyMessage indicates a blank feedback message.
var ErrEmptyMessage = errors.New("feedback cannot be empty")
