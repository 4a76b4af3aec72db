package habit

import "time"

// DayRange returns every date from from through to inclusive. Malformed or
// inverted bounds yield an empty range.
func DayRange(from, to string) []string {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil || end.Before(start) {
		return nil
	}
	days := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// StatusOn derives the display status of a single date.
func StatusOn(created string, logs map[string]LogStatus, date, today string) DayStatus {
	if date < created {
		return DayNotApplicable
	}
	if st, ok := logs[date]; ok {
		if st == LogCompleted {
			return DayCompleted
		}
		return DayFailed
	}
	if date < today {
		return DayFailed
	}
	return DayPending
}

// Days derives the display status of every date.
func Days(created string, logs map[string]LogStatus, dates []string, today string) []Day {
	out := make([]Day, 0, len(dates))
	for _, d := range dates {
		out = append(out, Day{Date: d, Status: StatusOn(created, logs, d, today)})
	}
	return out
}

// CurrentStreak counts consecutive completed logs walking back from today.
// An unlogged today ends the walk without counting, as does any failed day,
// explicit or inferred, and the day before creation.
func CurrentStreak(created string, logs map[string]LogStatus, today string) int {
	day, err := time.Parse(DateLayout, today)
	if err != nil || today < created {
		return 0
	}
	streak := 0
	for {
		date := day.Format(DateLayout)
		if date < created {
			break
		}
		st, ok := logs[date]
		if !ok || st != LogCompleted {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LastCompleted returns the latest completed date not after today.
func LastCompleted(logs map[string]LogStatus, today string) string {
	last := ""
	for date, st := range logs {
		if st == LogCompleted && date <= today && date > last {
			last = date
		}
	}
	return last
}

// Ratchet returns the best streak after observing current and whether it rose.
func Ratchet(stored, current int) (int, bool) {
	if current > stored {
		return current, true
	}
	return stored, false
}
