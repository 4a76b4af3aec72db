package feedback

import "time"

// Feedback is a message an account sent to the maintainers.
type Feedback struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
