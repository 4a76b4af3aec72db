package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// Service handles pomodoro settings, finished sessions and the usage report.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
}

// NewService creates a new pomodoro service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{repo: repo, logger: logger, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the owner's saved settings, or the defaults.
func (s *Service) Settings(ctx context.Context, scope plan.Scope) (*Settings, error) {
	st, err := s.repo.GetSettings(ctx, scope.OwnerID)
	if errors.Is(err, repository.ErrNotFound) {
		def := DefaultSettings()
		def.OwnerID = scope.OwnerID
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading pomodoro settings: %w", err)
	}
	return st, nil
}

// SaveSettings applies an update over the current settings. Every length
// must be at least one minute.
func (s *Service) SaveSettings(ctx context.Context, scope plan.Scope, req SettingsUpdate) (*Settings, error) {
	st, err := s.Settings(ctx, scope)
	if err != nil {
		return nil, err
	}
	req.apply(st)
	if err := st.validate(); err != nil {
		return nil, fmt.Errorf("%w: lengths must be at least 1", err)
	}
	st.OwnerID = scope.OwnerID
	st.UpdatedAt = s.now().UTC()
	if err := s.repo.UpsertSettings(ctx, scope.OwnerID, st); err != nil {
		return nil, fmt.Errorf("saving pomodoro settings: %w", err)
	}
	return st, nil
}

// Finish records a timer that ran out and returns the phase that follows.
// Guest sessions are never saved.
func (s *Service) Finish(ctx context.Context, scope plan.Scope, req FinishRequest) (*Finish, error) {
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}
	if req.SessionsSinceLong < 0 || req.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: negative count", ErrInvalidInput)
	}
	st, err := s.Settings(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := &Finish{Next: NextStep(*st, req.Mode, req.SessionsSinceLong)}
	if scope.Guest {
		return out, nil
	}

	now := s.now().UTC()
	ended := now
	if req.EndedAt != nil {
		ended = req.EndedAt.UTC()
	}
	if req.StartedAt.IsZero() || ended.Before(req.StartedAt) {
		return nil, fmt.Errorf("%w: started_at must precede ended_at", ErrInvalidInput)
	}
	duration := req.DurationSeconds
	if duration == 0 {
		duration = st.Minutes(req.Mode) * 60
	}
	sess := &Session{
		ID:              uuid.NewString(),
		OwnerID:         scope.OwnerID,
		Mode:            req.Mode,
		StartedAt:       req.StartedAt.UTC(),
		EndedAt:         ended,
		DurationSeconds: duration,
		Completed:       true,
		CreatedAt:       now,
	}
	if err := s.repo.CreateSession(ctx, scope.OwnerID, sess); err != nil {
		return nil, fmt.Errorf("saving pomodoro session: %w", err)
	}
	out.Session = sess
	out.Saved = true
	return out, nil
}

// History lists saved sessions of one mode, or of every mode when empty.
func (s *Service) History(ctx context.Context, scope plan.Scope, mode Mode) ([]Session, error) {
	if mode != "" && !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
	}
	sessions, err := s.repo.ListSessions(ctx, scope.OwnerID, mode)
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro sessions: %w", err)
	}
	return sessions, nil
}

// Report summarises completed focus sessions. Requires the usage reports
// capability.
func (s *Service) Report(ctx context.Context, scope plan.Scope) (*Report, error) {
	if err := plan.Require(plan.CapUsageReports, scope.Tier); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListSessions(ctx, scope.OwnerID, ModePomodoro)
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro sessions: %w", err)
	}
	return Summarise(sessions, s.now().In(s.loc), s.loc), nil
}

// NextStep advances the cycle: focus is followed by a short break, and every
// LongBreakAfterSessions short breaks the next break is long instead.
func NextStep(st Settings, finished Mode, sinceLong int) Step {
	next := Step{Mode: ModePomodoro, SessionsSinceLong: sinceLong}
	switch finished {
	case ModePomodoro:
		next.Mode = ModeShortBreak
	case ModeShortBreak:
		next.SessionsSinceLong = sinceLong + 1
		if next.SessionsSinceLong >= st.LongBreakAfterSessions {
			next.Mode = ModeLongBreak
		}
	case ModeLongBreak:
		next.SessionsSinceLong = 0
	}
	next.Seconds = st.Minutes(next.Mode) * 60
	return next
}

// Summarise builds a report from completed focus sessions. Days are keyed by
// the end time in loc.
func Summarise(sessions []Session, today time.Time, loc *time.Location) *Report {
	r := &Report{}
	days := map[string]bool{}
	for _, sess := range sessions {
		if !sess.Completed || sess.Mode != ModePomodoro {
			continue
		}
		r.Sessions++
		r.FocusSeconds += sess.DurationSeconds
		days[sess.EndedAt.In(loc).Format(dayLayout)] = true
	}
	r.ActiveDays = len(days)
	if r.ActiveDays > 0 {
		total := float64(r.FocusSeconds)
		n := float64(r.ActiveDays)
		r.Averages = Averages{
			Daily:   total / n,
			Weekly:  total / max(1, n/7),
			Monthly: total / max(1, n/30),
			Yearly:  total / max(1, n/365),
		}
	}
	r.CurrentStreak, r.BestStreak = dayStreaks(days, today.Format(dayLayout))
	return r
}

// dayStreaks returns the run of active days ending today and the longest run.
func dayStreaks(days map[string]bool, today string) (current, best int) {
	for d := today; days[d]; d = shiftDay(d, -1) {
		current++
	}
	keys := make([]string, 0, len(days))
	for d := range days {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	run := 0
	for i, d := range keys {
		if i > 0 && shiftDay(keys[i-1], 1) == d {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return current, best
}

func shiftDay(day string, n int) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(dayLayout)
}
