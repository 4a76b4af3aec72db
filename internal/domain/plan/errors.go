package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrLimitReached indicates a free-tier ceiling blocks the mutation.
	ErrLimitReached = errors.New("plan limit reached")
	// ErrCapabilityLocked indicates a premium-only capability was requested below premium.
	ErrCapabilityLocked = errors.New("upgrade required")
)

// LimitError carries the denied decision.
type LimitError struct {
	Decision Decision
}

func (e *LimitError) Error() string {
	return e.Decision.Message
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}

// CapabilityError names the locked capability.
type CapabilityError struct {
	Capability Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCapabilityLocked, capabilityMessages[e.Capability])
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityLocked
}
