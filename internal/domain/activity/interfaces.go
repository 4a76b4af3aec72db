package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, accountID string, entry *Entry) error
	List(ctx context.Context, accountID string, opts ListOptions) ([]Entry, error)
}
