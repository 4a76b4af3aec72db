package habit

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to capture today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the calendar location days are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// CreateRequest describes a habit creation request.
type CreateRequest struct {
	Name    string
	IconKey *string
}

// UpdateRequest describes a habit update request.
type UpdateRequest struct {
	Name    *string
	IconKey *string
}
