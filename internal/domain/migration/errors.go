package migration

import (
	"errors"
	"fmt"
)

// ErrMergeFailed indicates the guest data could not be stored. The guest
// ledger is kept so the merge can be retried.
var ErrMergeFailed = errors.New("guest data merge failed")

// MergeError wraps the store failure of a merge attempt.
type MergeError struct {
	Err       error
	Retryable bool
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMergeFailed, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

func (e *MergeError) Is(target error) bool {
	return target == ErrMergeFailed
}
