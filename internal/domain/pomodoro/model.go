package pomodoro

import "time"

// Mode is one phase of the timer cycle.
type Mode string

const (
	ModePomodoro   Mode = "pomodoro"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Valid reports whether m is a known phase.
func (m Mode) Valid() bool {
	return m == ModePomodoro || m == ModeShortBreak || m == ModeLongBreak
}

// Settings are the timer lengths of one owner.
type Settings struct {
	OwnerID                string    `json:"user_id,omitempty" db:"user_id"`
	PomodoroMinutes        int       `json:"pomodoro_minutes" db:"pomodoro_minutes"`
	ShortBreakMinutes      int       `json:"short_break_minutes" db:"short_break_minutes"`
	LongBreakMinutes       int       `json:"long_break_minutes" db:"long_break_minutes"`
	LongBreakAfterSessions int       `json:"long_break_after_sessions" db:"long_break_after_sessions"`
	PlaySound              bool      `json:"play_sound" db:"play_sound"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings used until an owner saves their own.
func DefaultSettings() Settings {
	return Settings{
		PomodoroMinutes:        20,
		ShortBreakMinutes:      5,
		LongBreakMinutes:       15,
		LongBreakAfterSessions: 2,
		PlaySound:              true,
	}
}

// Minutes returns the configured length of a phase.
func (s Settings) Minutes(m Mode) int {
	switch m {
	case ModeShortBreak:
		return s.ShortBreakMinutes
	case ModeLongBreak:
		return s.LongBreakMinutes
	default:
		return s.PomodoroMinutes
	}
}

func (s Settings) validate() error {
	if s.PomodoroMinutes < 1 || s.ShortBreakMinutes < 1 || s.LongBreakMinutes < 1 || s.LongBreakAfterSessions < 1 {
		return ErrInvalidInput
	}
	return nil
}

// SettingsUpdate changes the given fields and keeps the rest.
type SettingsUpdate struct {
	PomodoroMinutes        *int  `json:"pomodoro_minutes"`
	ShortBreakMinutes      *int  `json:"short_break_minutes"`
	LongBreakMinutes       *int  `json:"long_break_minutes"`
	LongBreakAfterSessions *int  `json:"long_break_after_sessions"`
	PlaySound              *bool `json:"play_sound"`
}

func (u SettingsUpdate) apply(s *Settings) {
	if u.PomodoroMinutes != nil {
		s.PomodoroMinutes = *u.PomodoroMinutes
	}
	if u.ShortBreakMinutes != nil {
		s.ShortBreakMinutes = *u.ShortBreakMinutes
	}
	if u.LongBreakMinutes != nil {
		s.LongBreakMinutes = *u.LongBreakMinutes
	}
	if u.LongBreakAfterSessions != nil {
		s.LongBreakAfterSessions = *u.LongBreakAfterSessions
	}
	if u.PlaySound != nil {
		s.PlaySound = *u.PlaySound
	}
}

// Session is one finished timer run.
type Session struct {
	ID              string    `json:"id" db:"id"`
	OwnerID         string    `json:"user_id" db:"user_id"`
	Mode            Mode      `json:"mode" db:"mode"`
	StartedAt       time.Time `json:"started_at" db:"started_at"`
	EndedAt         time.Time `json:"ended_at" db:"ended_at"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	Completed       bool      `json:"completed" db:"completed"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// FinishRequest reports a timer that ran out. A zero duration means the
// configured length of the mode. SessionsSinceLong is the number of focus
// sessions finished since the last long break.
type FinishRequest struct {
	Mode              Mode       `json:"mode"`
	StartedAt         time.Time  `json:"started_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
	DurationSeconds   int        `json:"duration_seconds,omitempty"`
	SessionsSinceLong int        `json:"sessions_since_long"`
}

// Step is the phase the timer moves to after a finished one.
type Step struct {
	Mode              Mode `json:"mode"`
	Seconds           int  `json:"seconds"`
	SessionsSinceLong int  `json:"sessions_since_long"`
}

// Finish is the outcome of a finished timer. Session is nil when nothing was
// saved.
type Finish struct {
	Session *Session `json:"session,omitempty"`
	Saved   bool     `json:"saved"`
	Next    Step     `json:"next"`
}

// Averages are focus seconds per active period.
type Averages struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// Report summarises completed focus sessions.
type Report struct {
	Sessions      int      `json:"sessions"`
	FocusSeconds  int      `json:"focus_seconds"`
	ActiveDays    int      `json:"active_days"`
	Averages      Averages `json:"averages"`
	CurrentStreak int      `json:"current_streak"`
	BestStreak    int      `json:"best_streak"`
}
