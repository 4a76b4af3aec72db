package activity

import "time"

// EntryType represents the type of activity event.
type EntryType string

const (
	TypeGuestMerged      EntryType = "guest_merged"
	TypeBestStreakRaised EntryType = "best_streak_raised"
	TypePlanChanged      EntryType = "plan_changed"
)

// Entry represents an event in an account's activity log.
type Entry struct {
	ID        int64     `json:"id" db:"id"`
	AccountID string    `json:"account_id" db:"account_id"`
	Type      EntryType `json:"type" db:"activity_type"`
	Summary   string    `json:"summary" db:"summary"`
	Details   string    `json:"details,omitempty" db:"details"` // JSON string
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
