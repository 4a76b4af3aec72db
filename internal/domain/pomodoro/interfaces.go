package pomodoro

import "context"

// Repository provides persistence for timer settings and finished sessions.
type Repository interface {
	// GetSettings returns repository.ErrNotFound when the owner never saved any.
	GetSettings(ctx context.Context, ownerID string) (*Settings, error)
	UpsertSettings(ctx context.Context, ownerID string, s *Settings) error
	CreateSession(ctx context.Context, ownerID string, sess *Session) error
	// ListSessions returns sessions ordered by ended_at. An empty mode lists
	// every mode.
	ListSessions(ctx context.Context, ownerID string, mode Mode) ([]Session, error)
}
