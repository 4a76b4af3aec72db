package mcp

import (
	"errors"
	"fmt"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/plan"
)

// ErrUnauthorized indicates a tool call without a resolvable account.
var ErrUnauthorized = errors.New("unauthorized")

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var capErr *plan.CapabilityError
	switch {
	case errors.As(err, &capErr):
		return &APIError{Code: "UPGRADE_REQUIRED", Message: err.Error(), RecoveryHint: "Upgrade to plus or pro"}
	case errors.Is(err, ErrUnauthorized), errors.Is(err, app.ErrNoOwner), errors.Is(err, account.ErrInvalidToken):
		return &APIError{Code: "UNAUTHORIZED", Message: "no account for this connection", RecoveryHint: "Pass a bearer token"}
	case errors.Is(err, account.ErrProfileNotFound):
		return &APIError{Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}
	case errors.Is(err, journal.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts err into the error reported to the assistant.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
