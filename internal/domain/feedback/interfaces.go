package feedback

import "context"

// Repository stores feedback messages.
type Repository interface {
	Create(ctx context.Context, accountID string, f *Feedback) error
}
