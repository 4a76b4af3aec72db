package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/feedback"
	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/migration"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is the error body of every failed request.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError maps domain errors to HTTP errors. Unknown errors become 500.
func MapError(err error) *APIError {
	var limit *plan.LimitError
	var locked *plan.CapabilityError
	switch {
	case errors.As(err, &limit):
		return &APIError{Status: http.StatusForbidden, Code: "plan_limit", Message: limit.Error(), Details: limit.Decision}
	case errors.As(err, &locked):
		return &APIError{Status: http.StatusForbidden, Code: "upgrade_required", Message: locked.Error(),
			Details: map[string]any{"capability": locked.Capability}}
	case errors.Is(err, migration.ErrMergeFailed):
		return &APIError{Status: http.StatusServiceUnavailable, Code: "merge_failed",
			Message: "Your guest data could not be saved yet. It is kept in this session; try again.", Retryable: true}
	case errors.Is(err, ErrUnauthorized), errors.Is(err, account.ErrInvalidToken), errors.Is(err, app.ErrNoOwner):
		return &APIError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "sign in or start a guest session"}
	case errors.Is(err, habit.ErrHabitNotFound), errors.Is(err, note.ErrNoteNotFound),
		errors.Is(err, todo.ErrTodoNotFound), errors.Is(err, shelf.ErrItemNotFound),
		errors.Is(err, journal.ErrEntryNotFound), errors.Is(err, sourcedump.ErrDumpNotFound),
		errors.Is(err, account.ErrProfileNotFound), errors.Is(err, guest.ErrSessionNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "not_found", Message: err.Error()}
	case errors.Is(err, account.ErrUsernameTaken):
		return &APIError{Status: http.StatusConflict, Code: "conflict", Message: err.Error()}
	case errors.Is(err, habit.ErrInvalidInput), errors.Is(err, habit.ErrHabitDeleted),
		errors.Is(err, habit.ErrBeforeCreation), errors.Is(err, habit.ErrFutureDay),
		errors.Is(err, note.ErrInvalidInput), errors.Is(err, todo.ErrInvalidInput),
		errors.Is(err, shelf.ErrInvalidInput), errors.Is(err, journal.ErrInvalidInput),
		errors.Is(err, sourcedump.ErrInvalidInput), errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, pomodoro.ErrInvalidInput), errors.Is(err, feedback.ErrEmptyMessage),
		errors.Is(err, errBadRequest):
		return &APIError{Status: http.StatusBadRequest, Code: "invalid_input", Message: err.Error()}
	case errors.Is(err, guest.ErrQuotaExceeded):
		return &APIError{Status: http.StatusInsufficientStorage, Code: "quota_exceeded", Message: err.Error()}
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: "internal", Message: "internal error"}
	}
}

// writeError writes the mapped error. Plan denials are expected outcomes and
// are not logged as failures.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	apiErr := MapError(err)
	switch {
	case apiErr.Status >= http.StatusInternalServerError:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	case apiErr.Code == "plan_limit" || apiErr.Code == "upgrade_required":
		logger.Info("plan denied request", "path", r.URL.Path, "reason", apiErr.Message)
	}
	writeJSON(w, apiErr.Status, map[string]*APIError{"error": apiErr})
}
