package dashboard

import "time"

// Counts are the records created in one period. Habit logs count the days
// logged in the period.
type Counts struct {
	Todos            int `json:"todos"`
	HabitLogs        int `json:"habit_logs"`
	PomodoroSessions int `json:"pomodoro_sessions"`
	JournalEntries   int `json:"journal_entries"`
	Notes            int `json:"notes"`
}

// Period is one window of the summary, ending now.
type Period struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Counts Counts    `json:"counts"`
}

// Summary is the activity of an owner for the current day, week, month and
// year. Weeks start on Monday.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Today       Period    `json:"today"`
	Week        Period    `json:"week"`
	Month       Period    `json:"month"`
	Year        Period    `json:"year"`
}
