package sourcedump

import "time"

// Dump is a scrapbook card collecting links, text, and screenshots.
type Dump struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"user_id"`
	Title           string    `json:"title"`
	Links           string    `json:"links"`
	TextContent     string    `json:"text_content"`
	Screenshots     []string  `json:"screenshots"`
	BackgroundColor *string   `json:"background_color,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateRequest describes a source dump creation request.
type CreateRequest struct {
	Title           string
	Links           string
	TextContent     string
	Screenshots     []string
	BackgroundColor *string
}

// UpdateRequest describes a source dump update request. A non-nil
// Screenshots replaces the attached list.
type UpdateRequest struct {
	Title       *string
	Links       *string
	TextContent *string
	Screenshots []string
}
