package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/migration"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
)

// MergeStore implements migration.Store. Every record is upserted by its
// original id, so replaying a merge leaves one row per record.
type MergeStore struct {
	db *DB
}

// NewMergeStore creates a new MergeStore
func NewMergeStore(db *DB) *MergeStore {
	return &MergeStore{db: db}
}

// InTx runs fn in one transaction.
func (s *MergeStore) InTx(ctx context.Context, fn func(w migration.Writer) error) error {
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(txWriter{ext: tx})
	})
}

type txWriter struct {
	ext sqlx.ExtContext
}

func (w txWriter) UpsertHabits(ctx context.Context, accountID string, habits []habit.Habit) error {
	return upsertHabits(ctx, w.ext, accountID, habits)
}

func (w txWriter) UpsertHabitLogs(ctx context.Context, accountID string, logs []habit.Log) error {
	return upsertHabitLogs(ctx, w.ext, accountID, logs)
}

func (w txWriter) UpsertNotes(ctx context.Context, accountID string, notes []note.Note) error {
	return upsertNotes(ctx, w.ext, accountID, notes)
}

func (w txWriter) UpsertTodos(ctx context.Context, accountID string, todos []todo.Todo) error {
	return upsertTodos(ctx, w.ext, accountID, todos)
}

func (w txWriter) UpsertShelfItems(ctx context.Context, accountID string, kind shelf.Kind, items []shelf.Item) error {
	return upsertShelfItems(ctx, w.ext, accountID, kind, items)
}

func (w txWriter) UpsertJournalEntries(ctx context.Context, accountID string, entries []journal.Entry) error {
	return upsertJournalEntries(ctx, w.ext, accountID, entries)
}

func (w txWriter) UpsertSourceDumps(ctx context.Context, accountID string, dumps []sourcedump.Dump) error {
	return upsertSourceDumps(ctx, w.ext, accountID, dumps)
}
