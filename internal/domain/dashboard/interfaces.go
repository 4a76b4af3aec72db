package dashboard

import (
	"context"
	"time"
)

// Counter counts an owner's records created within [from, to].
type Counter interface {
	CountCreated(ctx context.Context, ownerID string, from, to time.Time) (Counts, error)
}
