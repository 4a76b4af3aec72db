package habit

import (
	"context"

	"github.com/everday/everday/internal/domain/activity"
)

// Repository provides persistence for habits.
type Repository interface {
	Create(ctx context.Context, ownerID string, h *Habit) error
	Get(ctx context.Context, ownerID, id string) (*Habit, error)
	Update(ctx context.Context, ownerID string, h *Habit) error
	Destroy(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string) ([]Habit, error)
	CountActive(ctx context.Context, ownerID string) (int, error)
	// RaiseBestStreak stores best only if it exceeds the stored value.
	RaiseBestStreak(ctx context.Context, ownerID, id string, best int) (bool, error)
}

// LogRepository provides persistence for day logs keyed by habit and date.
type LogRepository interface {
	Get(ctx context.Context, ownerID, habitID, date string) (*Log, error)
	Upsert(ctx context.Context, ownerID string, log Log) error
	List(ctx context.Context, ownerID string) ([]Log, error)
}

// ActivityRecorder records account activity.
type ActivityRecorder interface {
	Record(ctx context.Context, accountID string, typ activity.EntryType, summary string, details any)
}
