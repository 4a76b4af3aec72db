package migration

import (
	"context"

	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
)

// Writer upserts records for an account keyed by their original ids. Habit
// logs are keyed by habit id and date.
type Writer interface {
	UpsertHabits(ctx context.Context, accountID string, habits []habit.Habit) error
	UpsertHabitLogs(ctx context.Context, accountID string, logs []habit.Log) error
	UpsertNotes(ctx context.Context, accountID string, notes []note.Note) error
	UpsertTodos(ctx context.Context, accountID string, todos []todo.Todo) error
	UpsertShelfItems(ctx context.Context, accountID string, kind shelf.Kind, items []shelf.Item) error
	UpsertJournalEntries(ctx context.Context, accountID string, entries []journal.Entry) error
	UpsertSourceDumps(ctx context.Context, accountID string, dumps []sourcedump.Dump) error
}

// Store runs fn in one transaction and commits only if fn succeeds.
type Store interface {
	InTx(ctx context.Context, fn func(w Writer) error) error
}

// ActivityRecorder records account activity.
type ActivityRecorder interface {
	Record(ctx context.Context, accountID string, typ activity.EntryType, summary string, details any)
}
