package shelf

import (
	"time"

	"github.com/everday/everday/internal/domain/plan"
)

// Kind selects a shelf.
type Kind string

const (
	KindReading Kind = "reading"
	KindWatch   Kind = "watch"
)

// Status is the column an item sits in.
type Status string

const (
	StatusWantToRead Status = "want_to_read"
	StatusReading    Status = "reading"
	StatusFinished   Status = "finished"

	StatusToWatch  Status = "to_watch"
	StatusWatching Status = "watching"
	StatusWatched  Status = "watched"
)

var columns = map[Kind][]Status{
	KindReading: {StatusWantToRead, StatusReading, StatusFinished},
	KindWatch:   {StatusToWatch, StatusWatching, StatusWatched},
}

// ParseKind validates a shelf name.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := columns[k]
	return k, ok
}

// Domain returns the plan domain of the shelf.
func (k Kind) Domain() plan.Domain {
	if k == KindWatch {
		return plan.DomainWatch
	}
	return plan.DomainReading
}

// Columns lists the shelf's statuses in board order.
func (k Kind) Columns() []Status {
	return columns[k]
}

// Has reports whether st is a column of the shelf.
func (k Kind) Has(st Status) bool {
	for _, c := range columns[k] {
		if c == st {
			return true
		}
	}
	return false
}

// Item is a book on the reading list or a title on the watch list.
type Item struct {
	ID              string    `json:"id" db:"id"`
	OwnerID         string    `json:"user_id" db:"user_id"`
	Shelf           Kind      `json:"shelf" db:"shelf"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author,omitempty" db:"author"`
	ActorActress    string    `json:"actor_actress,omitempty" db:"actor_actress"`
	Director        string    `json:"director,omitempty" db:"director"`
	Notes           string    `json:"notes" db:"notes"`
	Status          Status    `json:"status" db:"status"`
	BackgroundColor *string   `json:"background_color,omitempty" db:"background_color"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Fields is the editable text of an item.
type Fields struct {
	Title        *string `json:"title,omitempty"`
	Author       *string `json:"author,omitempty"`
	ActorActress *string `json:"actor_actress,omitempty"`
	Director     *string `json:"director,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Column is one status column of a board.
type Column struct {
	Status       Status `json:"status"`
	Items        []Item `json:"items"`
	Ceiling      int    `json:"ceiling"`
	LimitReached bool   `json:"limit_reached"`
}
