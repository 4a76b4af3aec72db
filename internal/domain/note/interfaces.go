package note

import "context"

// Repository provides persistence for notes.
type Repository interface {
	Create(ctx context.Context, ownerID string, n *Note) error
	Get(ctx context.Context, ownerID, id string) (*Note, error)
	Update(ctx context.Context, ownerID string, n *Note) error
	Delete(ctx context.Context, ownerID, id string) error
	// List returns notes newest first.
	List(ctx context.Context, ownerID string) ([]Note, error)
	Count(ctx context.Context, ownerID string) (int, error)
}
