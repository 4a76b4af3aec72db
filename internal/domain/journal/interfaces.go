package journal

import "context"

// Repository provides persistence for journal entries.
type Repository interface {
	GetByDate(ctx context.Context, ownerID, date string) (*Entry, error)
	Create(ctx context.Context, ownerID string, e *Entry) error
	Update(ctx context.Context, ownerID string, e *Entry) error
	DeleteByDate(ctx context.Context, ownerID, date string) error
	// ListRange returns entries with from <= date <= to ordered by date. Empty bounds are open.
	ListRange(ctx context.Context, ownerID, from, to string) ([]Entry, error)
}
