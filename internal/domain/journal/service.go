package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/google/uuid"
)

// Service handles journal business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new journal service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Save writes the entry of date, creating it on first save.
func (s *Service) Save(ctx context.Context, scope plan.Scope, date string, req SaveRequest) (*Entry, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if req.Mood != nil && !req.Mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, *req.Mood)
	}

	now := time.Now().UTC()
	e, err := s.repo.GetByDate(ctx, scope.OwnerID, date)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		e = &Entry{ID: uuid.NewString(), OwnerID: scope.OwnerID, EntryDate: date, CreatedAt: now}
		apply(e, req)
		e.UpdatedAt = now
		if err := s.repo.Create(ctx, scope.OwnerID, e); err != nil {
			return nil, fmt.Errorf("creating journal entry: %w", err)
		}
		return e, nil
	case err != nil:
		return nil, fmt.Errorf("loading journal entry: %w", err)
	}

	apply(e, req)
	e.UpdatedAt = now
	if err := s.repo.Update(ctx, scope.OwnerID, e); err != nil {
		return nil, fmt.Errorf("updating journal entry: %w", err)
	}
	return e, nil
}

// Get loads the entry of date.
func (s *Service) Get(ctx context.Context, scope plan.Scope, date string) (*Entry, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByDate(ctx, scope.OwnerID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("loading journal entry: %w", err)
	}
	return e, nil
}

// Delete removes the entry of date.
func (s *Service) Delete(ctx context.Context, scope plan.Scope, date string) error {
	if err := validDate(date); err != nil {
		return err
	}
	if err := s.repo.DeleteByDate(ctx, scope.OwnerID, date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting journal entry: %w", err)
	}
	return nil
}

// Month lists the entries of a calendar month.
func (s *Service) Month(ctx context.Context, scope plan.Scope, year int, month time.Month) ([]Entry, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, fmt.Errorf("%w: bad month %d-%d", ErrInvalidInput, year, month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	entries, err := s.repo.ListRange(ctx, scope.OwnerID, first.Format(DateLayout), last.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	return entries, nil
}

// Report summarises every entry. Requires the usage reports capability.
func (s *Service) Report(ctx context.Context, scope plan.Scope) (*Report, error) {
	if err := plan.Require(plan.CapUsageReports, scope.Tier); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListRange(ctx, scope.OwnerID, "", "")
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	return Summarise(entries), nil
}

// Summarise builds a report from date-ordered entries.
func Summarise(entries []Entry) *Report {
	r := &Report{Entries: len(entries), Moods: make(map[Mood]int, len(Moods))}
	for _, m := range Moods {
		r.Moods[m] = 0
	}
	var prev time.Time
	run := 0
	for i, e := range entries {
		if e.Mood != nil {
			r.Moods[*e.Mood]++
		}
		day, err := time.Parse(DateLayout, e.EntryDate)
		if err != nil {
			continue
		}
		if i > 0 && day.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > r.LongestRun {
			r.LongestRun = run
		}
		prev = day
	}
	if len(entries) > 0 {
		r.FirstEntry = entries[0].EntryDate
		r.LatestEntry = entries[len(entries)-1].EntryDate
	}
	return r
}

func validDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func apply(e *Entry, req SaveRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&e.Thoughts, req.Thoughts)
	set(&e.GoodThings, req.GoodThings)
	set(&e.BadThings, req.BadThings)
	set(&e.Lessons, req.Lessons)
	set(&e.Dreams, req.Dreams)
	if req.Mood != nil {
		m := *req.Mood
		e.Mood = &m
	}
}
