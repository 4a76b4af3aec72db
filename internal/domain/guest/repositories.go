package guest

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/everday/everday/internal/domain/dashboard"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
	"github.com/everday/everday/internal/repository"
)

// Repositories exposes a ledger through every domain repository interface.
type Repositories struct {
	Habits      *HabitRepository
	HabitLogs   *HabitLogRepository
	Notes       *NoteRepository
	Todos       *TodoRepository
	Shelves     *ShelfRepository
	Journal     *JournalRepository
	SourceDumps *SourceDumpRepository
	Pomodoro    *PomodoroRepository
	Dashboard   *DashboardCounter
}

// NewRepositories binds repositories to a ledger.
func NewRepositories(l *Ledger) Repositories {
	return Repositories{
		Habits:      &HabitRepository{l: l},
		HabitLogs:   &HabitLogRepository{l: l},
		Notes:       &NoteRepository{l: l},
		Todos:       &TodoRepository{l: l},
		Shelves:     &ShelfRepository{l: l},
		Journal:     &JournalRepository{l: l},
		SourceDumps: &SourceDumpRepository{l: l},
		Pomodoro:    &PomodoroRepository{l: l},
		Dashboard:   &DashboardCounter{l: l},
	}
}

// HabitRepository stores habits in a ledger.
type HabitRepository struct{ l *Ledger }

func (r *HabitRepository) Create(ctx context.Context, ownerID string, h *habit.Habit) error {
	return r.l.Write(ctx, DomainHabits, func(s *Snapshot) error {
		if slices.IndexFunc(s.Habits, func(x habit.Habit) bool { return x.ID == h.ID }) >= 0 {
			return repository.ErrConflict
		}
		rec := *h
		rec.OwnerID = ownerID
		s.Habits = append(s.Habits, rec)
		return nil
	})
}

func (r *HabitRepository) Get(_ context.Context, _, id string) (*habit.Habit, error) {
	var out *habit.Habit
	r.l.Read(func(s *Snapshot) {
		if i := slices.IndexFunc(s.Habits, func(x habit.Habit) bool { return x.ID == id }); i >= 0 {
			h := s.Habits[i]
			out = &h
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *HabitRepository) Update(ctx context.Context, _ string, h *habit.Habit) error {
	return r.l.Write(ctx, DomainHabits, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Habits, func(x habit.Habit) bool { return x.ID == h.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		best := s.Habits[i].BestStreak
		s.Habits[i] = *h
		if best > h.BestStreak {
			s.Habits[i].BestStreak = best
		}
		return nil
	})
}

func (r *HabitRepository) Destroy(ctx context.Context, _, id string) error {
	return r.l.Write(ctx, DomainHabits, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Habits, func(x habit.Habit) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.Habits = slices.Delete(s.Habits, i, i+1)
		delete(s.HabitLogs, id)
		return nil
	})
}

func (r *HabitRepository) List(_ context.Context, _ string) ([]habit.Habit, error) {
	var out []habit.Habit
	r.l.Read(func(s *Snapshot) { out = slices.Clone(s.Habits) })
	return out, nil
}

func (r *HabitRepository) CountActive(_ context.Context, _ string) (int, error) {
	n := 0
	r.l.Read(func(s *Snapshot) {
		for _, h := range s.Habits {
			if !h.IsDeleted {
				n++
			}
		}
	})
	return n, nil
}

func (r *HabitRepository) RaiseBestStreak(ctx context.Context, _, id string, best int) (bool, error) {
	raised := false
	err := r.l.Write(ctx, DomainHabits, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Habits, func(x habit.Habit) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		if best > s.Habits[i].BestStreak {
			s.Habits[i].BestStreak = best
			raised = true
		}
		return nil
	})
	return raised, err
}

// HabitLogRepository stores day logs in a ledger.
type HabitLogRepository struct{ l *Ledger }

func (r *HabitLogRepository) Get(_ context.Context, _, habitID, date string) (*habit.Log, error) {
	var out *habit.Log
	r.l.Read(func(s *Snapshot) {
		if st, ok := s.HabitLogs[habitID][date]; ok {
			out = &habit.Log{HabitID: habitID, Date: date, Status: st}
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *HabitLogRepository) Upsert(ctx context.Context, _ string, log habit.Log) error {
	return r.l.Write(ctx, DomainHabitLogs, func(s *Snapshot) error {
		if s.HabitLogs[log.HabitID] == nil {
			s.HabitLogs[log.HabitID] = make(map[string]habit.LogStatus)
		}
		s.HabitLogs[log.HabitID][log.Date] = log.Status
		return nil
	})
}

func (r *HabitLogRepository) List(_ context.Context, _ string) ([]habit.Log, error) {
	var out []habit.Log
	r.l.Read(func(s *Snapshot) {
		for id, days := range s.HabitLogs {
			for date, st := range days {
				out = append(out, habit.Log{HabitID: id, Date: date, Status: st})
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].HabitID != out[j].HabitID {
			return out[i].HabitID < out[j].HabitID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

// NoteRepository stores notes in a ledger.
type NoteRepository struct{ l *Ledger }

func (r *NoteRepository) Create(ctx context.Context, ownerID string, n *note.Note) error {
	return r.l.Write(ctx, DomainNotes, func(s *Snapshot) error {
		rec := *n
		rec.OwnerID = ownerID
		s.Notes = append(s.Notes, rec)
		return nil
	})
}

func (r *NoteRepository) Get(_ context.Context, _, id string) (*note.Note, error) {
	var out *note.Note
	r.l.Read(func(s *Snapshot) {
		if i := slices.IndexFunc(s.Notes, func(x note.Note) bool { return x.ID == id }); i >= 0 {
			n := s.Notes[i]
			out = &n
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *NoteRepository) Update(ctx context.Context, _ string, n *note.Note) error {
	return r.l.Write(ctx, DomainNotes, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Notes, func(x note.Note) bool { return x.ID == n.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.Notes[i] = *n
		return nil
	})
}

func (r *NoteRepository) Delete(ctx context.Context, _, id string) error {
	return r.l.Write(ctx, DomainNotes, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Notes, func(x note.Note) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.Notes = slices.Delete(s.Notes, i, i+1)
		return nil
	})
}

func (r *NoteRepository) List(_ context.Context, _ string) ([]note.Note, error) {
	var out []note.Note
	r.l.Read(func(s *Snapshot) { out = slices.Clone(s.Notes) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NoteRepository) Count(_ context.Context, _ string) (int, error) {
	n := 0
	r.l.Read(func(s *Snapshot) { n = len(s.Notes) })
	return n, nil
}

// TodoRepository stores todos in a ledger.
type TodoRepository struct{ l *Ledger }

func (r *TodoRepository) Create(ctx context.Context, ownerID string, t *todo.Todo) error {
	return r.l.Write(ctx, DomainTodos, func(s *Snapshot) error {
		rec := *t
		rec.OwnerID = ownerID
		s.Todos = append(s.Todos, rec)
		return nil
	})
}

func (r *TodoRepository) Get(_ context.Context, _, id string) (*todo.Todo, error) {
	var out *todo.Todo
	r.l.Read(func(s *Snapshot) {
		if i := slices.IndexFunc(s.Todos, func(x todo.Todo) bool { return x.ID == id }); i >= 0 {
			t := s.Todos[i]
			out = &t
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *TodoRepository) Update(ctx context.Context, _ string, t *todo.Todo) error {
	return r.l.Write(ctx, DomainTodos, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Todos, func(x todo.Todo) bool { return x.ID == t.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.Todos[i] = *t
		return nil
	})
}

func (r *TodoRepository) Delete(ctx context.Context, _, id string) error {
	return r.l.Write(ctx, DomainTodos, func(s *Snapshot) error {
		i := slices.IndexFunc(s.Todos, func(x todo.Todo) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.Todos = slices.Delete(s.Todos, i, i+1)
		return nil
	})
}

func (r *TodoRepository) List(_ context.Context, _ string, kind todo.Kind) ([]todo.Todo, error) {
	out := []todo.Todo{}
	r.l.Read(func(s *Snapshot) {
		for _, t := range s.Todos {
			if kind == "" || t.Kind == kind {
				out = append(out, t)
			}
		}
	})
	return out, nil
}

func (r *TodoRepository) Count(ctx context.Context, ownerID string, kind todo.Kind) (int, error) {
	todos, err := r.List(ctx, ownerID, kind)
	return len(todos), err
}

// ShelfRepository stores reading and watch list items in a ledger.
type ShelfRepository struct{ l *Ledger }

func shelfItems(s *Snapshot, kind shelf.Kind) *[]shelf.Item {
	if kind == shelf.KindWatch {
		return &s.MovieItems
	}
	return &s.ReadingList
}

func shelfDomain(kind shelf.Kind) Domain {
	if kind == shelf.KindWatch {
		return DomainMovieItems
	}
	return DomainReadingList
}

func (r *ShelfRepository) Create(ctx context.Context, ownerID string, item *shelf.Item) error {
	return r.l.Write(ctx, shelfDomain(item.Shelf), func(s *Snapshot) error {
		rec := *item
		rec.OwnerID = ownerID
		items := shelfItems(s, item.Shelf)
		*items = append(*items, rec)
		return nil
	})
}

func (r *ShelfRepository) Get(_ context.Context, _ string, kind shelf.Kind, id string) (*shelf.Item, error) {
	var out *shelf.Item
	r.l.Read(func(s *Snapshot) {
		items := *shelfItems(s, kind)
		if i := slices.IndexFunc(items, func(x shelf.Item) bool { return x.ID == id }); i >= 0 {
			it := items[i]
			out = &it
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *ShelfRepository) Update(ctx context.Context, _ string, item *shelf.Item) error {
	return r.l.Write(ctx, shelfDomain(item.Shelf), func(s *Snapshot) error {
		items := *shelfItems(s, item.Shelf)
		i := slices.IndexFunc(items, func(x shelf.Item) bool { return x.ID == item.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		items[i] = *item
		return nil
	})
}

func (r *ShelfRepository) Delete(ctx context.Context, _ string, kind shelf.Kind, id string) error {
	return r.l.Write(ctx, shelfDomain(kind), func(s *Snapshot) error {
		items := shelfItems(s, kind)
		i := slices.IndexFunc(*items, func(x shelf.Item) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		*items = slices.Delete(*items, i, i+1)
		return nil
	})
}

func (r *ShelfRepository) List(_ context.Context, _ string, kind shelf.Kind) ([]shelf.Item, error) {
	var out []shelf.Item
	r.l.Read(func(s *Snapshot) { out = slices.Clone(*shelfItems(s, kind)) })
	return out, nil
}

func (r *ShelfRepository) Count(_ context.Context, _ string, kind shelf.Kind, status shelf.Status) (int, error) {
	n := 0
	r.l.Read(func(s *Snapshot) {
		for _, it := range *shelfItems(s, kind) {
			if it.Status == status {
				n++
			}
		}
	})
	return n, nil
}

// JournalRepository stores journal entries in a ledger.
type JournalRepository struct{ l *Ledger }

func (r *JournalRepository) GetByDate(_ context.Context, _, date string) (*journal.Entry, error) {
	var out *journal.Entry
	r.l.Read(func(s *Snapshot) {
		if i := slices.IndexFunc(s.JournalEntries, func(x journal.Entry) bool { return x.EntryDate == date }); i >= 0 {
			e := s.JournalEntries[i]
			out = &e
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *JournalRepository) Create(ctx context.Context, ownerID string, e *journal.Entry) error {
	return r.l.Write(ctx, DomainJournalEntries, func(s *Snapshot) error {
		if slices.IndexFunc(s.JournalEntries, func(x journal.Entry) bool { return x.EntryDate == e.EntryDate }) >= 0 {
			return repository.ErrConflict
		}
		rec := *e
		rec.OwnerID = ownerID
		s.JournalEntries = append(s.JournalEntries, rec)
		return nil
	})
}

func (r *JournalRepository) Update(ctx context.Context, _ string, e *journal.Entry) error {
	return r.l.Write(ctx, DomainJournalEntries, func(s *Snapshot) error {
		i := slices.IndexFunc(s.JournalEntries, func(x journal.Entry) bool { return x.ID == e.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.JournalEntries[i] = *e
		return nil
	})
}

func (r *JournalRepository) DeleteByDate(ctx context.Context, _, date string) error {
	return r.l.Write(ctx, DomainJournalEntries, func(s *Snapshot) error {
		i := slices.IndexFunc(s.JournalEntries, func(x journal.Entry) bool { return x.EntryDate == date })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.JournalEntries = slices.Delete(s.JournalEntries, i, i+1)
		return nil
	})
}

func (r *JournalRepository) ListRange(_ context.Context, _, from, to string) ([]journal.Entry, error) {
	out := []journal.Entry{}
	r.l.Read(func(s *Snapshot) {
		for _, e := range s.JournalEntries {
			if (from == "" || e.EntryDate >= from) && (to == "" || e.EntryDate <= to) {
				out = append(out, e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate < out[j].EntryDate })
	return out, nil
}

// SourceDumpRepository stores source dumps in a ledger.
type SourceDumpRepository struct{ l *Ledger }

func (r *SourceDumpRepository) Create(ctx context.Context, ownerID string, d *sourcedump.Dump) error {
	return r.l.Write(ctx, DomainSourceDumps, func(s *Snapshot) error {
		rec := *d
		rec.OwnerID = ownerID
		rec.Screenshots = slices.Clone(d.Screenshots)
		s.SourceDumps = append(s.SourceDumps, rec)
		return nil
	})
}

func (r *SourceDumpRepository) Get(_ context.Context, _, id string) (*sourcedump.Dump, error) {
	var out *sourcedump.Dump
	r.l.Read(func(s *Snapshot) {
		if i := slices.IndexFunc(s.SourceDumps, func(x sourcedump.Dump) bool { return x.ID == id }); i >= 0 {
			d := s.SourceDumps[i]
			d.Screenshots = slices.Clone(d.Screenshots)
			out = &d
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *SourceDumpRepository) Update(ctx context.Context, _ string, d *sourcedump.Dump) error {
	return r.l.Write(ctx, DomainSourceDumps, func(s *Snapshot) error {
		i := slices.IndexFunc(s.SourceDumps, func(x sourcedump.Dump) bool { return x.ID == d.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		rec := *d
		rec.Screenshots = slices.Clone(d.Screenshots)
		s.SourceDumps[i] = rec
		return nil
	})
}

func (r *SourceDumpRepository) Delete(ctx context.Context, _, id string) error {
	return r.l.Write(ctx, DomainSourceDumps, func(s *Snapshot) error {
		i := slices.IndexFunc(s.SourceDumps, func(x sourcedump.Dump) bool { return x.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		s.SourceDumps = slices.Delete(s.SourceDumps, i, i+1)
		return nil
	})
}

func (r *SourceDumpRepository) List(_ context.Context, _ string) ([]sourcedump.Dump, error) {
	var out []sourcedump.Dump
	r.l.Read(func(s *Snapshot) { out = slices.Clone(s.SourceDumps) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SourceDumpRepository) Count(_ context.Context, _ string) (int, error) {
	n := 0
	r.l.Read(func(s *Snapshot) { n = len(s.SourceDumps) })
	return n, nil
}

// PomodoroRepository keeps a guest's timer settings in a ledger. Guest
// sessions are never stored, so the session methods hold nothing.
type PomodoroRepository struct{ l *Ledger }

func (r *PomodoroRepository) GetSettings(_ context.Context, _ string) (*pomodoro.Settings, error) {
	var out *pomodoro.Settings
	r.l.Read(func(s *Snapshot) {
		if s.PomodoroSettings != nil {
			st := *s.PomodoroSettings
			out = &st
		}
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *PomodoroRepository) UpsertSettings(ctx context.Context, ownerID string, st *pomodoro.Settings) error {
	return r.l.Write(ctx, DomainPomodoroSettings, func(s *Snapshot) error {
		rec := *st
		rec.OwnerID = ownerID
		s.PomodoroSettings = &rec
		return nil
	})
}

func (r *PomodoroRepository) CreateSession(_ context.Context, _ string, _ *pomodoro.Session) error {
	return nil
}

func (r *PomodoroRepository) ListSessions(_ context.Context, _ string, _ pomodoro.Mode) ([]pomodoro.Session, error) {
	return []pomodoro.Session{}, nil
}

// DashboardCounter counts ledger records by creation time and habit logs by
// date. A ledger holds no pomodoro sessions.
type DashboardCounter struct{ l *Ledger }

func (c *DashboardCounter) CountCreated(_ context.Context, _ string, from, to time.Time) (dashboard.Counts, error) {
	in := func(t time.Time) bool { return !t.Before(from) && !t.After(to) }
	first, last := from.Format(habit.DateLayout), to.Format(habit.DateLayout)
	var out dashboard.Counts
	c.l.Read(func(s *Snapshot) {
		for _, t := range s.Todos {
			if in(t.CreatedAt) {
				out.Todos++
			}
		}
		for _, n := range s.Notes {
			if in(n.CreatedAt) {
				out.Notes++
			}
		}
		for _, e := range s.JournalEntries {
			if in(e.CreatedAt) {
				out.JournalEntries++
			}
		}
		for _, days := range s.HabitLogs {
			for d := range days {
				if d >= first && d <= last {
					out.HabitLogs++
				}
			}
		}
	})
	return out, nil
}
