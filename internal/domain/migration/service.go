package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/shelf"
)

var errNothingToMerge = errors.New("nothing to merge")

// Result describes a merge attempt.
type Result struct {
	Skipped bool                 `json:"skipped"`
	Reason  string               `json:"reason,omitempty"`
	Counts  map[guest.Domain]int `json:"counts,omitempty"`
}

// Service moves guest ledgers into account-owned storage.
type Service struct {
	store      Store
	activities ActivityRecorder
	logger     *slog.Logger
}

// NewService creates a new merge service. activities may be nil.
func NewService(store Store, activities ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, activities: activities, logger: logger}
}

// Reconcile merges the session's ledger into accountID at most once per
// session. Every record keeps its guest id, so a retried merge updates rather
// than duplicates. The ledger is cleared only after the transaction commits;
// on failure it is kept and a retryable *MergeError is returned. Plan ceilings
// are not re-checked.
func (s *Service) Reconcile(ctx context.Context, sess *guest.Session, accountID string) (*Result, error) {
	if sess == nil || accountID == "" {
		return nil, fmt.Errorf("reconcile: session and account are required")
	}

	res := &Result{}
	skipped, err := sess.RunMerge(func() error {
		return sess.Ledger.Drain(ctx, func(snap guest.Snapshot) error {
			if snap.IsEmpty() {
				return errNothingToMerge
			}
			if err := s.store.InTx(ctx, func(w Writer) error {
				return writeSnapshot(ctx, w, accountID, snap)
			}); err != nil {
				return &MergeError{Err: err, Retryable: true}
			}
			res.Counts = snap.Counts()
			return nil
		})
	})
	switch {
	case skipped:
		return &Result{Skipped: true, Reason: "already merged"}, nil
	case errors.Is(err, errNothingToMerge):
		return &Result{Skipped: true, Reason: "guest ledger is empty"}, nil
	case err != nil:
		s.logger.Error("guest merge failed", "session_id", sess.ID, "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("guest data merged", "session_id", sess.ID, "account_id", accountID, "counts", res.Counts)
	if s.activities != nil {
		s.activities.Record(ctx, accountID, activity.TypeGuestMerged, "merged guest session data", res.Counts)
	}
	return res, nil
}

func writeSnapshot(ctx context.Context, w Writer, accountID string, snap guest.Snapshot) error {
	if err := w.UpsertHabits(ctx, accountID, snap.Habits); err != nil {
		return fmt.Errorf("merging habits: %w", err)
	}
	if err := w.UpsertHabitLogs(ctx, accountID, flattenLogs(snap.HabitLogs)); err != nil {
		return fmt.Errorf("merging habit logs: %w", err)
	}
	if err := w.UpsertNotes(ctx, accountID, snap.Notes); err != nil {
		return fmt.Errorf("merging notes: %w", err)
	}
	if err := w.UpsertTodos(ctx, accountID, snap.Todos); err != nil {
		return fmt.Errorf("merging todos: %w", err)
	}
	if err := w.UpsertShelfItems(ctx, accountID, shelf.KindReading, snap.ReadingList); err != nil {
		return fmt.Errorf("merging reading list: %w", err)
	}
	if err := w.UpsertShelfItems(ctx, accountID, shelf.KindWatch, snap.MovieItems); err != nil {
		return fmt.Errorf("merging watch list: %w", err)
	}
	if err := w.UpsertJournalEntries(ctx, accountID, snap.JournalEntries); err != nil {
		return fmt.Errorf("merging journal: %w", err)
	}
	if err := w.UpsertSourceDumps(ctx, accountID, snap.SourceDumps); err != nil {
		return fmt.Errorf("merging source dumps: %w", err)
	}
	return nil
}

func flattenLogs(byHabit map[string]map[string]habit.LogStatus) []habit.Log {
	out := make([]habit.Log, 0)
	for id, days := range byHabit {
		for date, st := range days {
			out = append(out, habit.Log{HabitID: id, Date: date, Status: st})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HabitID != out[j].HabitID {
			return out[i].HabitID < out[j].HabitID
		}
		return out[i].Date < out[j].Date
	})
	return out
}
