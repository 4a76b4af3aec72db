package account

import (
	"context"

	"github.com/everday/everday/internal/domain/activity"
)

// Repository provides persistence for profiles.
type Repository interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	// CreateWithKey inserts a profile and its first key hash in one transaction.
	CreateWithKey(ctx context.Context, p *Profile, keyHash string) error
}

// KeyRepository stores hashed API tokens.
type KeyRepository interface {
	CreateKey(ctx context.Context, accountID, keyHash string) error
	ResolveKey(ctx context.Context, keyHash string) (string, error)
}

// ActivityRecorder records account activity.
type ActivityRecorder interface {
	Record(ctx context.Context, accountID string, typ activity.EntryType, summary string, details any)
}
