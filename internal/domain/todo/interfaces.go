package todo

import "context"

// Repository provides persistence for todos.
type Repository interface {
	Create(ctx context.Context, ownerID string, t *Todo) error
	Get(ctx context.Context, ownerID, id string) (*Todo, error)
	Update(ctx context.Context, ownerID string, t *Todo) error
	Delete(ctx context.Context, ownerID, id string) error
	// List returns todos oldest first. An empty kind lists every list.
	List(ctx context.Context, ownerID string, kind Kind) ([]Todo, error)
	Count(ctx context.Context, ownerID string, kind Kind) (int, error)
}
