package habit

import "time"

// DateLayout is the calendar-day format used for log dates.
const DateLayout = "2006-01-02"

// Habit is a tracked daily habit.
type Habit struct {
	ID         string     `json:"id" db:"id"`
	OwnerID    string     `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	IconKey    *string    `json:"icon_key,omitempty" db:"icon_key"`
	BestStreak int        `json:"best_streak" db:"best_streak"`
	IsDeleted  bool       `json:"is_deleted" db:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// CreatedOn returns the creation day in loc.
func (h Habit) CreatedOn(loc *time.Location) string {
	return h.CreatedAt.In(loc).Format(DateLayout)
}

// LogStatus is the stored outcome of a day. Absence of a log means no outcome yet.
type LogStatus string

const (
	LogCompleted LogStatus = "completed"
	LogFailed    LogStatus = "failed"
)

// Valid reports whether the status is one of the stored values.
func (s LogStatus) Valid() bool {
	return s == LogCompleted || s == LogFailed
}

// Log is one explicit day outcome, unique per habit and date.
type Log struct {
	HabitID string    `json:"habit_id" db:"habit_id"`
	Date    string    `json:"log_date" db:"log_date"`
	Status  LogStatus `json:"status" db:"status"`
}

// DayStatus is the display status of a day.
type DayStatus string

const (
	DayNotApplicable DayStatus = "not_applicable"
	DayCompleted     DayStatus = "completed"
	DayFailed        DayStatus = "failed"
	DayPending       DayStatus = "pending"
)

// Day pairs a date with its display status.
type Day struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
}

// Streak holds the visible streak counters of a habit.
type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// View is a habit decorated for the board.
type View struct {
	Habit
	Days          []Day   `json:"days"`
	Streak        *Streak `json:"streak,omitempty"`
	LastCompleted string  `json:"last_completed,omitempty"`
}

// Board is the habit tracker view for one scope and one captured day.
type Board struct {
	Today         string   `json:"today"`
	Dates         []string `json:"dates"`
	Habits        []View   `json:"habits"`
	Deleted       []Habit  `json:"deleted"`
	StreakVisible bool     `json:"streak_visible"`
	LimitReached  bool     `json:"limit_reached"`
	LimitMessage  string   `json:"limit_message,omitempty"`
}
