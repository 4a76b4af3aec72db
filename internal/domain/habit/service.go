package habit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/google/uuid"
)

// Service handles habit business logic.
type Service struct {
	habits     Repository
	logs       LogRepository
	activities ActivityRecorder
	logger     *slog.Logger
	now        func() time.Time
	loc        *time.Location
}

// NewService creates a new habit service. activities may be nil.
func NewService(habits Repository, logs LogRepository, activities ActivityRecorder, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		habits:     habits,
		logs:       logs,
		activities: activities,
		logger:     logger,
		now:        time.Now,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a habit if the plan allows another active habit.
func (s *Service) Create(ctx context.Context, scope plan.Scope, req CreateRequest) (*Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.checkCeiling(ctx, scope); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	h := &Habit{
		ID:        uuid.NewString(),
		OwnerID:   scope.OwnerID,
		Name:      name,
		IconKey:   normalizeIcon(req.IconKey),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.habits.Create(ctx, scope.OwnerID, h); err != nil {
		return nil, fmt.Errorf("creating habit: %w", err)
	}
	return h, nil
}

// Update changes the name or icon of a habit.
func (s *Service) Update(ctx context.Context, scope plan.Scope, id string, req UpdateRequest) (*Habit, error) {
	h, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		h.Name = name
	}
	if req.IconKey != nil {
		h.IconKey = normalizeIcon(req.IconKey)
	}
	h.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, scope, h); err != nil {
		return nil, err
	}
	return h, nil
}

// SoftDelete hides a habit while keeping its history.
func (s *Service) SoftDelete(ctx context.Context, scope plan.Scope, id string) error {
	h, err := s.get(ctx, scope, id)
	if err != nil {
		return err
	}
	if h.IsDeleted {
		return nil
	}
	now := s.now().UTC()
	h.IsDeleted = true
	h.DeletedAt = &now
	h.UpdatedAt = now
	return s.save(ctx, scope, h)
}

// Restore brings back a soft-deleted habit if the plan allows another active habit.
func (s *Service) Restore(ctx context.Context, scope plan.Scope, id string) (*Habit, error) {
	h, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !h.IsDeleted {
		return h, nil
	}
	if err := s.checkCeiling(ctx, scope); err != nil {
		return nil, err
	}
	h.IsDeleted = false
	h.DeletedAt = nil
	h.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, scope, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Destroy permanently removes a habit and its logs.
func (s *Service) Destroy(ctx context.Context, scope plan.Scope, id string) error {
	if err := s.habits.Destroy(ctx, scope.OwnerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("destroying habit: %w", err)
	}
	return nil
}

// MarkDay sets the outcome of date. A nil desired status toggles the day:
// completed becomes failed and anything else becomes completed. Setting the
// status already stored is a no-op.
func (s *Service) MarkDay(ctx context.Context, scope plan.Scope, id, date string, desired *LogStatus) (*Log, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if desired != nil && !desired.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *desired)
	}

	h, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if h.IsDeleted {
		return nil, ErrHabitDeleted
	}
	today := s.now().In(s.loc).Format(DateLayout)
	if date < h.CreatedOn(s.loc) {
		return nil, ErrBeforeCreation
	}
	if date > today {
		return nil, ErrFutureDay
	}

	existing, err := s.logs.Get(ctx, scope.OwnerID, id, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading log: %w", err)
	}

	next := LogCompleted
	switch {
	case desired != nil:
		next = *desired
	case existing != nil && existing.Status == LogCompleted:
		next = LogFailed
	}
	if existing != nil && existing.Status == next {
		return existing, nil
	}

	entry := Log{HabitID: id, Date: date, Status: next}
	if err := s.logs.Upsert(ctx, scope.OwnerID, entry); err != nil {
		return nil, fmt.Errorf("saving log: %w", err)
	}
	return &entry, nil
}

// Board evaluates every habit against a single captured today. Raised best
// streaks are persisted by the returned WriteBack, which the board never waits on.
func (s *Service) Board(ctx context.Context, scope plan.Scope) (*Board, *WriteBack, error) {
	today := s.now().In(s.loc).Format(DateLayout)

	all, err := s.habits.List(ctx, scope.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing habits: %w", err)
	}
	logs, err := s.logs.List(ctx, scope.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing logs: %w", err)
	}
	byHabit := make(map[string]map[string]LogStatus)
	for _, l := range logs {
		if byHabit[l.HabitID] == nil {
			byHabit[l.HabitID] = make(map[string]LogStatus)
		}
		byHabit[l.HabitID][l.Date] = l.Status
	}

	board := &Board{
		Today:         today,
		Habits:        []View{},
		Deleted:       []Habit{},
		StreakVisible: plan.CanUse(plan.CapStreakDisplay, scope.Tier),
	}

	earliest := today
	active := make([]Habit, 0, len(all))
	for _, h := range all {
		if h.IsDeleted {
			if !board.StreakVisible {
				h.BestStreak = 0
			}
			board.Deleted = append(board.Deleted, h)
			continue
		}
		active = append(active, h)
		if c := h.CreatedOn(s.loc); c < earliest {
			earliest = c
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })
	board.Dates = DayRange(earliest, today)

	var raised []Raise
	for _, h := range active {
		created := h.CreatedOn(s.loc)
		hl := byHabit[h.ID]
		current := CurrentStreak(created, hl, today)
		best, up := Ratchet(h.BestStreak, current)
		if up {
			raised = append(raised, Raise{HabitID: h.ID, From: h.BestStreak, To: best})
		}
		view := View{
			Habit:         h,
			Days:          Days(created, hl, board.Dates, today),
			LastCompleted: LastCompleted(hl, today),
		}
		view.BestStreak = 0
		if board.StreakVisible {
			view.BestStreak = best
			view.Streak = &Streak{Current: current, Best: best}
		}
		board.Habits = append(board.Habits, view)
	}

	dec := plan.Check(plan.DomainHabits, plan.BucketAll, len(active), scope.Tier)
	board.LimitReached = !dec.Allowed
	board.LimitMessage = dec.Message

	wb := startWriteBack(ctx, raised, func(ctx context.Context, r Raise) error {
		return s.raiseBest(ctx, scope, r)
	})
	return board, wb, nil
}

func (s *Service) raiseBest(ctx context.Context, scope plan.Scope, r Raise) error {
	ok, err := s.habits.RaiseBestStreak(ctx, scope.OwnerID, r.HabitID, r.To)
	if err != nil {
		s.logger.Warn("best streak write-back failed", "habit_id", r.HabitID, "best", r.To, "error", err)
		return fmt.Errorf("raising best streak: %w", err)
	}
	if ok && s.activities != nil && !scope.Guest {
		s.activities.Record(ctx, scope.OwnerID, activity.TypeBestStreakRaised,
			fmt.Sprintf("best streak raised to %d", r.To), r)
	}
	return nil
}

func (s *Service) checkCeiling(ctx context.Context, scope plan.Scope) error {
	count, err := s.habits.CountActive(ctx, scope.OwnerID)
	if err != nil {
		return fmt.Errorf("counting habits: %w", err)
	}
	dec := plan.Check(plan.DomainHabits, plan.BucketAll, count, scope.Tier)
	if !dec.Allowed {
		s.logger.Info("habit creation denied by plan", "owner_id", scope.OwnerID, "count", count, "ceiling", dec.Ceiling)
	}
	return dec.Err()
}

func (s *Service) get(ctx context.Context, scope plan.Scope, id string) (*Habit, error) {
	h, err := s.habits.Get(ctx, scope.OwnerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("loading habit: %w", err)
	}
	return h, nil
}

func (s *Service) save(ctx context.Context, scope plan.Scope, h *Habit) error {
	if err := s.habits.Update(ctx, scope.OwnerID, h); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("updating habit: %w", err)
	}
	return nil
}

func normalizeIcon(icon *string) *string {
	if icon == nil {
		return nil
	}
	v := strings.TrimSpace(*icon)
	if v == "" {
		return nil
	}
	return &v
}
