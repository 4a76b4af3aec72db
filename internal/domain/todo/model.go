package todo

import (
	"time"

	"github.com/everday/everday/internal/domain/plan"
)

// Kind is the list a todo belongs to.
type Kind string

const (
	KindTask    Kind = "task"
	KindYearly  Kind = "yearly"
	KindMonthly Kind = "monthly"
)

// Valid reports whether k is a known list.
func (k Kind) Valid() bool {
	return k == KindTask || k == KindYearly || k == KindMonthly
}

// Bucket returns the plan bucket the list is counted in.
func (k Kind) Bucket() plan.Bucket {
	return plan.Bucket(k)
}

// Todo is a task or goal.
type Todo struct {
	ID              string    `json:"id" db:"id"`
	OwnerID         string    `json:"user_id" db:"user_id"`
	Kind            Kind      `json:"type" db:"type"`
	Title           string    `json:"title" db:"title"`
	IsCompleted     bool      `json:"is_completed" db:"is_completed"`
	BackgroundColor *string   `json:"background_color,omitempty" db:"background_color"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRequest describes a todo creation request.
type CreateRequest struct {
	Kind            Kind
	Title           string
	BackgroundColor *string
}
