package guest

import (
	"maps"
	"slices"

	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/sourcedump"
	"github.com/everday/everday/internal/domain/todo"
)

// Domain names one collection of the ledger.
type Domain string

const (
	DomainHabits         Domain = "habits"
	DomainHabitLogs      Domain = "habitLogs"
	DomainNotes          Domain = "notes"
	DomainTodos          Domain = "todos"
	DomainReadingList    Domain = "readingList"
	DomainMovieItems     Domain = "movieItems"
	DomainJournalEntries Domain = "journalEntries"
	DomainSourceDumps    Domain = "sourceDumps"

	// DomainPomodoroSettings holds preferences, not records. It is neither
	// counted nor merged into an account.
	DomainPomodoroSettings Domain = "pomodoroSettings"
)

// Domains lists every ledger collection.
var Domains = []Domain{
	DomainHabits,
	DomainHabitLogs,
	DomainNotes,
	DomainTodos,
	DomainReadingList,
	DomainMovieItems,
	DomainJournalEntries,
	DomainSourceDumps,
}

// Snapshot is the plain-data content of a ledger. HabitLogs is keyed by habit
// id and then by date.
type Snapshot struct {
	Habits         []habit.Habit                         `json:"habits"`
	HabitLogs      map[string]map[string]habit.LogStatus `json:"habitLogs"`
	Notes          []note.Note                           `json:"notes"`
	Todos          []todo.Todo                           `json:"todos"`
	ReadingList    []shelf.Item                          `json:"readingList"`
	MovieItems     []shelf.Item                          `json:"movieItems"`
	JournalEntries []journal.Entry                       `json:"journalEntries"`
	SourceDumps    []sourcedump.Dump                     `json:"sourceDumps"`

	PomodoroSettings *pomodoro.Settings `json:"pomodoroSettings,omitempty"`
}

// Counts returns the number of records per collection. Habit logs count
// individual days.
func (s *Snapshot) Counts() map[Domain]int {
	logs := 0
	for _, days := range s.HabitLogs {
		logs += len(days)
	}
	return map[Domain]int{
		DomainHabits:         len(s.Habits),
		DomainHabitLogs:      logs,
		DomainNotes:          len(s.Notes),
		DomainTodos:          len(s.Todos),
		DomainReadingList:    len(s.ReadingList),
		DomainMovieItems:     len(s.MovieItems),
		DomainJournalEntries: len(s.JournalEntries),
		DomainSourceDumps:    len(s.SourceDumps),
	}
}

// IsEmpty reports whether no collection holds a record.
func (s *Snapshot) IsEmpty() bool {
	for _, n := range s.Counts() {
		if n > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() Snapshot {
	out := Snapshot{
		Habits:         slices.Clone(s.Habits),
		HabitLogs:      make(map[string]map[string]habit.LogStatus, len(s.HabitLogs)),
		Notes:          slices.Clone(s.Notes),
		Todos:          slices.Clone(s.Todos),
		ReadingList:    slices.Clone(s.ReadingList),
		MovieItems:     slices.Clone(s.MovieItems),
		JournalEntries: slices.Clone(s.JournalEntries),
		SourceDumps:    slices.Clone(s.SourceDumps),
	}
	for id, days := range s.HabitLogs {
		out.HabitLogs[id] = maps.Clone(days)
	}
	if s.PomodoroSettings != nil {
		st := *s.PomodoroSettings
		out.PomodoroSettings = &st
	}
	for i := range out.SourceDumps {
		out.SourceDumps[i].Screenshots = slices.Clone(out.SourceDumps[i].Screenshots)
	}
	return out
}

// normalize replaces nil collections so the serialized form is stable.
func (s *Snapshot) normalize() {
	if s.Habits == nil {
		s.Habits = []habit.Habit{}
	}
	if s.HabitLogs == nil {
		s.HabitLogs = map[string]map[string]habit.LogStatus{}
	}
	if s.Notes == nil {
		s.Notes = []note.Note{}
	}
	if s.Todos == nil {
		s.Todos = []todo.Todo{}
	}
	if s.ReadingList == nil {
		s.ReadingList = []shelf.Item{}
	}
	if s.MovieItems == nil {
		s.MovieItems = []shelf.Item{}
	}
	if s.JournalEntries == nil {
		s.JournalEntries = []journal.Entry{}
	}
	if s.SourceDumps == nil {
		s.SourceDumps = []sourcedump.Dump{}
	}
	for i := range s.ReadingList {
		s.ReadingList[i].Shelf = shelf.KindReading
	}
	for i := range s.MovieItems {
		s.MovieItems[i].Shelf = shelf.KindWatch
	}
}
