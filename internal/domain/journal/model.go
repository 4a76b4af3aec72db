package journal

import "time"

// DateLayout is the format of entry dates.
const DateLayout = "2006-01-02"

// Mood is the self-reported mood of a day.
type Mood string

const (
	MoodGreat   Mood = "Great"
	MoodGood    Mood = "Good"
	MoodNeutral Mood = "Neutral"
	MoodBad     Mood = "Bad"
	MoodAwful   Mood = "Awful"
)

// Moods lists every mood from best to worst.
var Moods = []Mood{MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// Entry is the journal page of one date.
type Entry struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"user_id" db:"user_id"`
	EntryDate  string    `json:"entry_date" db:"entry_date"`
	Thoughts   string    `json:"thoughts" db:"thoughts"`
	GoodThings string    `json:"good_things" db:"good_things"`
	BadThings  string    `json:"bad_things" db:"bad_things"`
	Lessons    string    `json:"lessons" db:"lessons"`
	Dreams     string    `json:"dreams" db:"dreams"`
	Mood       *Mood     `json:"mood,omitempty" db:"mood"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// SaveRequest carries the fields written for a date. Nil fields keep their value.
type SaveRequest struct {
	Thoughts   *string `json:"thoughts,omitempty"`
	GoodThings *string `json:"good_things,omitempty"`
	BadThings  *string `json:"bad_things,omitempty"`
	Lessons    *string `json:"lessons,omitempty"`
	Dreams     *string `json:"dreams,omitempty"`
	Mood       *Mood   `json:"mood,omitempty"`
}

// Report summarises the journal.
type Report struct {
	Entries     int          `json:"entries"`
	Moods       map[Mood]int `json:"moods"`
	LongestRun  int          `json:"longest_run"`
	FirstEntry  string       `json:"first_entry,omitempty"`
	LatestEntry string       `json:"latest_entry,omitempty"`
}
