package migration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/migration"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore keeps upserted rows keyed like the database does and can fail on demand.
type memStore struct {
	fail    error
	habits  map[string]habit.Habit
	logs    map[string]habit.Log
	notes   map[string]note.Note
	todos   map[string]todo.Todo
	items   map[string]shelf.Item
	entries map[string]journal.Entry
	dumps   map[string]sourcedump.Dump
	txs     int
}

func newMemStore() *memStore {
	return &memStore{
		habits:  map[string]habit.Habit{},
		logs:    map[string]habit.Log{},
		notes:   map[string]note.Note{},
		todos:   map[string]todo.Todo{},
		items:   map[string]shelf.Item{},
		entries: map[string]journal.Entry{},
		dumps:   map[string]sourcedump.Dump{},
	}
}

func (m *memStore) InTx(ctx context.Context, fn func(w migration.Writer) error) error {
	m.txs++
	if m.fail != nil {
		return m.fail
	}
	return fn(m)
}

func (m *memStore) UpsertHabits(_ context.Context, accountID string, habits []habit.Habit) error {
	for _, h := range habits {
		h.OwnerID = accountID
		m.habits[h.ID] = h
	}
	return nil
}

func (m *memStore) UpsertHabitLogs(_ context.Context, _ string, logs []habit.Log) error {
	for _, l := range logs {
		m.logs[l.HabitID+"/"+l.Date] = l
	}
	return nil
}

func (m *memStore) UpsertNotes(_ context.Context, accountID string, notes []note.Note) error {
	for _, n := range notes {
		n.OwnerID = accountID
		m.notes[n.ID] = n
	}
	return nil
}

func (m *memStore) UpsertTodos(_ context.Context, accountID string, todos []todo.Todo) error {
	for _, t := range todos {
		t.OwnerID = accountID
		m.todos[t.ID] = t
	}
	return nil
}

func (m *memStore) UpsertShelfItems(_ context.Context, accountID string, kind shelf.Kind, items []shelf.Item) error {
	for _, it := range items {
		it.OwnerID = accountID
		m.items[string(kind)+"/"+it.ID] = it
	}
	return nil
}

func (m *memStore) UpsertJournalEntries(_ context.Context, accountID string, entries []journal.Entry) error {
	for _, e := range entries {
		e.OwnerID = accountID
		m.entries[e.ID] = e
	}
	return nil
}

func (m *memStore) UpsertSourceDumps(_ context.Context, accountID string, dumps []sourcedump.Dump) error {
	for _, d := range dumps {
		d.OwnerID = accountID
		m.dumps[d.ID] = d
	}
	return nil
}

func guestWithData(t *testing.T) *guest.Session {
	t.Helper()
	ctx := context.Background()
	sess := guest.NewRegistry(guest.NewMemoryStorage(0), nil).Create(ctx)
	repos := guest.NewRepositories(sess.Ledger)
	scope := plan.Scope{OwnerID: sess.ID, Guest: true}

	habits := habit.NewService(repos.Habits, repos.HabitLogs, nil, nil)
	h, err := habits.Create(ctx, scope, habit.CreateRequest{Name: "Run"})
	require.NoError(t, err)
	today := h.CreatedOn(time.Local)
	_, err = habits.MarkDay(ctx, scope, h.ID, today, nil)
	require.NoError(t, err)

	_, err = note.NewService(repos.Notes, nil).Create(ctx, scope, note.CreateRequest{Title: "Ideas"})
	require.NoError(t, err)
	_, err = todo.NewService(repos.Todos, nil).Create(ctx, scope, todo.CreateRequest{Title: "Ship"})
	require.NoError(t, err)
	title := "Heat"
	_, err = shelf.NewService(repos.Shelves, nil).Add(ctx, scope, shelf.KindWatch, "", shelf.Fields{Title: &title}, nil)
	require.NoError(t, err)
	_, err = journal.NewService(repos.Journal, nil).Save(ctx, scope, "2024-01-01", journal.SaveRequest{Thoughts: &title})
	require.NoError(t, err)
	_, err = sourcedump.NewService(repos.SourceDumps, nil).Create(ctx, scope, sourcedump.CreateRequest{Title: "Refs"})
	require.NoError(t, err)
	return sess
}

func TestReconcileMergesAndClears(t *testing.T) {
	ctx := context.Background()
	sess := guestWithData(t)
	snap := sess.Ledger.Snapshot()
	store := newMemStore()

	recorder := &mocks.ActivityRecorder{}
	recorder.On("Record", ctx, "acct-1", mock.Anything, mock.Anything, mock.Anything).Return()

	res, err := migration.NewService(store, recorder, nil).Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.False(t, res.Skipped)
	require.Equal(t, 1, res.Counts[guest.DomainHabits])
	require.Equal(t, 1, res.Counts[guest.DomainHabitLogs])

	require.True(t, sess.Ledger.IsEmpty())
	require.True(t, sess.Merged())
	require.Equal(t, "acct-1", store.habits[snap.Habits[0].ID].OwnerID)
	require.Len(t, store.logs, 1)
	require.Len(t, store.notes, 1)
	require.Len(t, store.todos, 1)
	require.Len(t, store.items, 1)
	require.Len(t, store.entries, 1)
	require.Len(t, store.dumps, 1)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestReconcileIsOneShotPerSession(t *testing.T) {
	ctx := context.Background()
	sess := guestWithData(t)
	store := newMemStore()
	svc := migration.NewService(store, nil, nil)

	_, err := svc.Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)

	res, err := svc.Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, 1, store.txs)
}

func TestReconcileRetryDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	sess := guestWithData(t)
	snap := sess.Ledger.Snapshot()
	store := newMemStore()

	// Simulates a retried network call that replays the same snapshot.
	require.NoError(t, store.InTx(ctx, func(w migration.Writer) error {
		return w.UpsertHabits(ctx, "acct-1", snap.Habits)
	}))
	_, err := migration.NewService(store, nil, nil).Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.Len(t, store.habits, 1)
}

func TestReconcileFailureKeepsLedger(t *testing.T) {
	ctx := context.Background()
	sess := guestWithData(t)
	before := sess.Ledger.Snapshot()
	store := newMemStore()
	store.fail = errors.New("connection reset")
	svc := migration.NewService(store, nil, nil)

	_, err := svc.Reconcile(ctx, sess, "acct-1")
	require.ErrorIs(t, err, migration.ErrMergeFailed)
	var mergeErr *migration.MergeError
	require.True(t, errors.As(err, &mergeErr))
	require.True(t, mergeErr.Retryable)

	require.False(t, sess.Merged())
	require.Equal(t, before, sess.Ledger.Snapshot())

	store.fail = nil
	res, err := svc.Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.False(t, res.Skipped)
	require.True(t, sess.Ledger.IsEmpty())
	require.Len(t, store.habits, 1)
}

func TestReconcileEmptyLedgerDoesNotFire(t *testing.T) {
	ctx := context.Background()
	sess := guest.NewRegistry(guest.NewMemoryStorage(0), nil).Create(ctx)
	store := newMemStore()

	res, err := migration.NewService(store, nil, nil).Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.False(t, sess.Merged())
	require.Equal(t, 0, store.txs)
}

func TestReconcileKeepsGuestHabitsAboveCeiling(t *testing.T) {
	ctx := context.Background()
	sess := guest.NewRegistry(guest.NewMemoryStorage(0), nil).Create(ctx)
	require.NoError(t, sess.Ledger.Write(ctx, guest.DomainHabits, func(s *guest.Snapshot) error {
		for i := 0; i < 9; i++ {
			s.Habits = append(s.Habits, habit.Habit{ID: string(rune('a' + i)), Name: "h"})
		}
		return nil
	}))
	store := newMemStore()

	_, err := migration.NewService(store, nil, nil).Reconcile(ctx, sess, "acct-1")
	require.NoError(t, err)
	require.Len(t, store.habits, 9)
}
