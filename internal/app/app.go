// Package app assembles the feature services for accounts and guest sessions.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/dashboard"
	"github.com/everday/everday/internal/domain/feedback"
	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/migration"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
	"github.com/everday/everday/internal/store"
)

// Services are the feature services bound to one owner's storage.
type Services struct {
	Habits    *habit.Service
	Notes     *note.Service
	Todos     *todo.Service
	Shelves   *shelf.Service
	Journal   *journal.Service
	Sources   *sourcedump.Service
	Pomodoro  *pomodoro.Service
	Dashboard *dashboard.Service
}

// App holds the account services and the guest session registry.
type App struct {
	Accounts *account.Service
	Activity *activity.Service
	Merge    *migration.Service
	Guests   *guest.Registry
	Feedback *feedback.Service

	accountServices Services
	habitOpts       []habit.Option
	logger          *slog.Logger
}

// New wires every service over db. Guest ledgers persist to guestStorage.
func New(db *store.DB, guestStorage guest.Storage, logger *slog.Logger, habitOpts ...habit.Option) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	activities := activity.NewService(store.NewActivityRepository(db), logger)
	a := &App{
		Accounts:  account.NewService(store.NewProfileRepository(db), store.NewAPIKeyRepository(db), activities, logger),
		Activity:  activities,
		Merge:     migration.NewService(store.NewMergeStore(db), activities, logger),
		Guests:    guest.NewRegistry(guestStorage, logger.With("component", "guest")),
		Feedback:  feedback.NewService(store.NewFeedbackRepository(db), logger),
		habitOpts: habitOpts,
		logger:    logger,
	}
	a.accountServices = Services{
		Habits:    habit.NewService(store.NewHabitRepository(db), store.NewHabitLogRepository(db), activities, logger, habitOpts...),
		Notes:     note.NewService(store.NewNoteRepository(db), logger),
		Todos:     todo.NewService(store.NewTodoRepository(db), logger),
		Shelves:   shelf.NewService(store.NewShelfRepository(db), logger),
		Journal:   journal.NewService(store.NewJournalRepository(db), logger),
		Sources:   sourcedump.NewService(store.NewSourceDumpRepository(db), logger),
		Pomodoro:  pomodoro.NewService(store.NewPomodoroRepository(db), logger),
		Dashboard: dashboard.NewService(store.NewDashboardRepository(db), logger),
	}
	return a
}

// ForAccount returns the database-backed services.
func (a *App) ForAccount() Services {
	return a.accountServices
}

// ForGuest returns services backed by the session's ledger. Guests have no
// activity log.
func (a *App) ForGuest(sess *guest.Session) Services {
	repos := guest.NewRepositories(sess.Ledger)
	logger := a.logger.With("guest_session", sess.ID)
	return Services{
		Habits:    habit.NewService(repos.Habits, repos.HabitLogs, nil, logger, a.habitOpts...),
		Notes:     note.NewService(repos.Notes, logger),
		Todos:     todo.NewService(repos.Todos, logger),
		Shelves:   shelf.NewService(repos.Shelves, logger),
		Journal:   journal.NewService(repos.Journal, logger),
		Sources:   sourcedump.NewService(repos.SourceDumps, logger),
		Pomodoro:  pomodoro.NewService(repos.Pomodoro, logger),
		Dashboard: dashboard.NewService(repos.Dashboard, logger),
	}
}

// GuestScope is the plan scope of a guest session; guests are always free.
func GuestScope(sess *guest.Session) plan.Scope {
	return plan.Scope{OwnerID: sess.ID, Tier: plan.TierFree, Guest: true}
}

// ErrNoOwner indicates a request carried neither an account nor a guest session.
var ErrNoOwner = errors.New("no account or guest session")

// Owner resolves the scope and services of an account or a guest session.
// The account wins when both are given.
func (a *App) Owner(ctx context.Context, accountID string, sess *guest.Session) (plan.Scope, Services, error) {
	if accountID != "" {
		scope, err := a.Accounts.Scope(ctx, accountID)
		if err != nil {
			return plan.Scope{}, Services{}, err
		}
		return scope, a.ForAccount(), nil
	}
	if sess == nil {
		return plan.Scope{}, Services{}, ErrNoOwner
	}
	return GuestScope(sess), a.ForGuest(sess), nil
}
