// Package dashboard summarises recent activity across every feature.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/everday/everday/internal/domain/plan"
)

// Service builds activity summaries.
type Service struct {
	counter Counter
	logger  *slog.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock periods end at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the calendar location periods start in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// NewService creates a new dashboard service.
func NewService(counter Counter, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{counter: counter, logger: logger, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary counts the owner's records for today, this week, this month and
// this year. Requires the AI dashboard capability.
func (s *Service) Summary(ctx context.Context, scope plan.Scope) (*Summary, error) {
	if err := plan.Require(plan.CapAIDashboard, scope.Tier); err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	out := &Summary{GeneratedAt: now.UTC()}
	periods := []struct {
		dst  *Period
		from time.Time
	}{
		{&out.Today, StartOfDay(now)},
		{&out.Week, StartOfWeek(now)},
		{&out.Month, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())},
		{&out.Year, time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range periods {
		g.Go(func() error {
			counts, err := s.counter.CountCreated(gctx, scope.OwnerID, p.from, now)
			if err != nil {
				return err
			}
			*p.dst = Period{From: p.from, To: now, Counts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("counting activity: %w", err)
	}
	s.logger.Debug("dashboard summary built", "owner_id", scope.OwnerID, "today", out.Today.Counts)
	return out, nil
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -back)
}
