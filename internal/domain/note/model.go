package note

import "time"

// Note is a free-form card.
type Note struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRequest describes a note creation request.
type CreateRequest struct {
	Title   string
	Content string
	Color   *string
}

// UpdateRequest describes a note update request.
type UpdateRequest struct {
	Title   *string
	Content *string
}
