package shelf

import "context"

// Repository provides persistence for shelf items.
type Repository interface {
	Create(ctx context.Context, ownerID string, item *Item) error
	Get(ctx context.Context, ownerID string, shelf Kind, id string) (*Item, error)
	Update(ctx context.Context, ownerID string, item *Item) error
	Delete(ctx context.Context, ownerID string, shelf Kind, id string) error
	List(ctx context.Context, ownerID string, shelf Kind) ([]Item, error)
	Count(ctx context.Context, ownerID string, shelf Kind, status Status) (int, error)
}
