package mocks

import (
	"context"

	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/feedback"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
	"github.com/stretchr/testify/mock"
)

var (
	_ habit.Repository       = (*HabitRepository)(nil)
	_ habit.LogRepository    = (*HabitLogRepository)(nil)
	_ note.Repository        = (*NoteRepository)(nil)
	_ todo.Repository        = (*TodoRepository)(nil)
	_ shelf.Repository       = (*ShelfRepository)(nil)
	_ journal.Repository     = (*JournalRepository)(nil)
	_ sourcedump.Repository  = (*SourceDumpRepository)(nil)
	_ account.Repository     = (*ProfileRepository)(nil)
	_ account.KeyRepository  = (*APIKeyRepository)(nil)
	_ activity.Repository    = (*ActivityRepository)(nil)
	_ habit.ActivityRecorder = (*ActivityRecorder)(nil)
	_ pomodoro.Repository    = (*PomodoroRepository)(nil)
	_ feedback.Repository    = (*FeedbackRepository)(nil)
)

// HabitRepository is a mock for habit.Repository.
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) Create(ctx context.Context, ownerID string, h *habit.Habit) error {
	args := m.Called(ctx, ownerID, h)
	return args.Error(0)
}

func (m *HabitRepository) Get(ctx context.Context, ownerID, id string) (*habit.Habit, error) {
	args := m.Called(ctx, ownerID, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Update(ctx context.Context, ownerID string, h *habit.Habit) error {
	args := m.Called(ctx, ownerID, h)
	return args.Error(0)
}

func (m *HabitRepository) Destroy(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *HabitRepository) List(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) CountActive(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *HabitRepository) RaiseBestStreak(ctx context.Context, ownerID, id string, best int) (bool, error) {
	args := m.Called(ctx, ownerID, id, best)
	return args.Bool(0), args.Error(1)
}

// HabitLogRepository is a mock for habit.LogRepository.
type HabitLogRepository struct {
	mock.Mock
}

func (m *HabitLogRepository) Get(ctx context.Context, ownerID, habitID, date string) (*habit.Log, error) {
	args := m.Called(ctx, ownerID, habitID, date)
	if l, ok := args.Get(0).(*habit.Log); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitLogRepository) Upsert(ctx context.Context, ownerID string, log habit.Log) error {
	args := m.Called(ctx, ownerID, log)
	return args.Error(0)
}

func (m *HabitLogRepository) List(ctx context.Context, ownerID string) ([]habit.Log, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]habit.Log); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// NoteRepository is a mock for note.Repository.
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Create(ctx context.Context, ownerID string, n *note.Note) error {
	args := m.Called(ctx, ownerID, n)
	return args.Error(0)
}

func (m *NoteRepository) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	args := m.Called(ctx, ownerID, id)
	if n, ok := args.Get(0).(*note.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) Update(ctx context.Context, ownerID string, n *note.Note) error {
	args := m.Called(ctx, ownerID, n)
	return args.Error(0)
}

func (m *NoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *NoteRepository) List(ctx context.Context, ownerID string) ([]note.Note, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) Count(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

// TodoRepository is a mock for todo.Repository.
type TodoRepository struct {
	mock.Mock
}

func (m *TodoRepository) Create(ctx context.Context, ownerID string, t *todo.Todo) error {
	args := m.Called(ctx, ownerID, t)
	return args.Error(0)
}

func (m *TodoRepository) Get(ctx context.Context, ownerID, id string) (*todo.Todo, error) {
	args := m.Called(ctx, ownerID, id)
	if t, ok := args.Get(0).(*todo.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TodoRepository) Update(ctx context.Context, ownerID string, t *todo.Todo) error {
	args := m.Called(ctx, ownerID, t)
	return args.Error(0)
}

func (m *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *TodoRepository) List(ctx context.Context, ownerID string, kind todo.Kind) ([]todo.Todo, error) {
	args := m.Called(ctx, ownerID, kind)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TodoRepository) Count(ctx context.Context, ownerID string, kind todo.Kind) (int, error) {
	args := m.Called(ctx, ownerID, kind)
	return args.Int(0), args.Error(1)
}

// ShelfRepository is a mock for shelf.Repository.
type ShelfRepository struct {
	mock.Mock
}

func (m *ShelfRepository) Create(ctx context.Context, ownerID string, item *shelf.Item) error {
	args := m.Called(ctx, ownerID, item)
	return args.Error(0)
}

func (m *ShelfRepository) Get(ctx context.Context, ownerID string, kind shelf.Kind, id string) (*shelf.Item, error) {
	args := m.Called(ctx, ownerID, kind, id)
	if it, ok := args.Get(0).(*shelf.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShelfRepository) Update(ctx context.Context, ownerID string, item *shelf.Item) error {
	args := m.Called(ctx, ownerID, item)
	return args.Error(0)
}

func (m *ShelfRepository) Delete(ctx context.Context, ownerID string, kind shelf.Kind, id string) error {
	args := m.Called(ctx, ownerID, kind, id)
	return args.Error(0)
}

func (m *ShelfRepository) List(ctx context.Context, ownerID string, kind shelf.Kind) ([]shelf.Item, error) {
	args := m.Called(ctx, ownerID, kind)
	if list, ok := args.Get(0).([]shelf.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ShelfRepository) Count(ctx context.Context, ownerID string, kind shelf.Kind, status shelf.Status) (int, error) {
	args := m.Called(ctx, ownerID, kind, status)
	return args.Int(0), args.Error(1)
}

// JournalRepository is a mock for journal.Repository.
type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) GetByDate(ctx context.Context, ownerID, date string) (*journal.Entry, error) {
	args := m.Called(ctx, ownerID, date)
	if e, ok := args.Get(0).(*journal.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JournalRepository) Create(ctx context.Context, ownerID string, e *journal.Entry) error {
	args := m.Called(ctx, ownerID, e)
	return args.Error(0)
}

func (m *JournalRepository) Update(ctx context.Context, ownerID string, e *journal.Entry) error {
	args := m.Called(ctx, ownerID, e)
	return args.Error(0)
}

func (m *JournalRepository) DeleteByDate(ctx context.Context, ownerID, date string) error {
	args := m.Called(ctx, ownerID, date)
	return args.Error(0)
}

func (m *JournalRepository) ListRange(ctx context.Context, ownerID, from, to string) ([]journal.Entry, error) {
	args := m.Called(ctx, ownerID, from, to)
	if list, ok := args.Get(0).([]journal.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SourceDumpRepository is a mock for sourcedump.Repository.
type SourceDumpRepository struct {
	mock.Mock
}

func (m *SourceDumpRepository) Create(ctx context.Context, ownerID string, d *sourcedump.Dump) error {
	args := m.Called(ctx, ownerID, d)
	return args.Error(0)
}

func (m *SourceDumpRepository) Get(ctx context.Context, ownerID, id string) (*sourcedump.Dump, error) {
	args := m.Called(ctx, ownerID, id)
	if d, ok := args.Get(0).(*sourcedump.Dump); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SourceDumpRepository) Update(ctx context.Context, ownerID string, d *sourcedump.Dump) error {
	args := m.Called(ctx, ownerID, d)
	return args.Error(0)
}

func (m *SourceDumpRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *SourceDumpRepository) List(ctx context.Context, ownerID string) ([]sourcedump.Dump, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]sourcedump.Dump); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SourceDumpRepository) Count(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

// ProfileRepository is a mock for account.Repository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Get(ctx context.Context, id string) (*account.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*account.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, p *account.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProfileRepository) CreateWithKey(ctx context.Context, p *account.Profile, keyHash string) error {
	args := m.Called(ctx, p, keyHash)
	return args.Error(0)
}

func (m *ProfileRepository) Update(ctx context.Context, p *account.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// APIKeyRepository is a mock for account.KeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) CreateKey(ctx context.Context, accountID, keyHash string) error {
	args := m.Called(ctx, accountID, keyHash)
	return args.Error(0)
}

func (m *APIKeyRepository) ResolveKey(ctx context.Context, keyHash string) (string, error) {
	args := m.Called(ctx, keyHash)
	return args.String(0), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, accountID string, entry *activity.Entry) error {
	args := m.Called(ctx, accountID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, accountID string, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, accountID, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRecorder is a mock for the activity recorders services depend on.
type ActivityRecorder struct {
	mock.Mock
}

func (m *ActivityRecorder) Record(ctx context.Context, accountID string, typ activity.EntryType, summary string, details any) {
	m.Called(ctx, accountID, typ, summary, details)
}

// PomodoroRepository is a mock for pomodoro.Repository.
type PomodoroRepository struct {
	mock.Mock
}

func (m *PomodoroRepository) GetSettings(ctx context.Context, ownerID string) (*pomodoro.Settings, error) {
	args := m.Called(ctx, ownerID)
	if st, ok := args.Get(0).(*pomodoro.Settings); ok {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PomodoroRepository) UpsertSettings(ctx context.Context, ownerID string, st *pomodoro.Settings) error {
	args := m.Called(ctx, ownerID, st)
	return args.Error(0)
}

func (m *PomodoroRepository) CreateSession(ctx context.Context, ownerID string, sess *pomodoro.Session) error {
	args := m.Called(ctx, ownerID, sess)
	return args.Error(0)
}

func (m *PomodoroRepository) ListSessions(ctx context.Context, ownerID string, mode pomodoro.Mode) ([]pomodoro.Session, error) {
	args := m.Called(ctx, ownerID, mode)
	if list, ok := args.Get(0).([]pomodoro.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FeedbackRepository is a mock for feedback.Repository.
type FeedbackRepository struct {
	mock.Mock
}

func (m *FeedbackRepository) Create(ctx context.Context, accountID string, f *feedback.Feedback) error {
	args := m.Called(ctx, accountID, f)
	return args.Error(0)
}
