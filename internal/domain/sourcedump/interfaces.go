package sourcedump

import "context"

// Repository provides persistence for source dumps.
type Repository interface {
	Create(ctx context.Context, ownerID string, d *Dump) error
	Get(ctx context.Context, ownerID, id string) (*Dump, error)
	Update(ctx context.Context, ownerID string, d *Dump) error
	Delete(ctx context.Context, ownerID, id string) error
	// List returns dumps newest first.
	List(ctx context.Context, ownerID string) ([]Dump, error)
	Count(ctx context.Context, ownerID string) (int, error)
}
