package pomodoro

import "time"

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for session end times and today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the calendar location report days are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}
