package habit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureLogs() map[string]LogStatus {
	return map[string]LogStatus{
		"2024-01-01": LogCompleted,
		"2024-01-02": LogCompleted,
		"2024-01-03": LogFailed,
		"2024-01-04": LogCompleted,
		"2024-01-05": LogCompleted,
	}
}

func TestCurrentStreakFixture(t *testing.T) {
	require.Equal(t, 2, CurrentStreak("2024-01-01", fixtureLogs(), "2024-01-05"))

	best, raised := Ratchet(0, 2)
	require.True(t, raised)
	require.GreaterOrEqual(t, best, 2)
}

func TestStatusOnFixture(t *testing.T) {
	logs := fixtureLogs()
	require.Equal(t, DayNotApplicable, StatusOn("2024-01-01", logs, "2023-12-31", "2024-01-05"))
	require.Equal(t, DayCompleted, StatusOn("2024-01-01", logs, "2024-01-01", "2024-01-05"))
	require.Equal(t, DayFailed, StatusOn("2024-01-01", logs, "2024-01-03", "2024-01-05"))
	require.Equal(t, DayPending, StatusOn("2024-01-01", logs, "2024-01-06", "2024-01-06"))
}

func TestStatusOnInfersPastFailures(t *testing.T) {
	logs := map[string]LogStatus{"2024-01-01": LogCompleted}
	require.Equal(t, DayFailed, StatusOn("2024-01-01", logs, "2024-01-02", "2024-01-03"))
	require.Equal(t, DayPending, StatusOn("2024-01-01", logs, "2024-01-03", "2024-01-03"))
}

func TestCurrentStreakUnloggedToday(t *testing.T) {
	logs := map[string]LogStatus{
		"2024-01-01": LogCompleted,
		"2024-01-02": LogCompleted,
	}
	require.Equal(t, 0, CurrentStreak("2024-01-01", logs, "2024-01-03"))

	logs["2024-01-03"] = LogCompleted
	require.Equal(t, 3, CurrentStreak("2024-01-01", logs, "2024-01-03"))
}

func TestCurrentStreakStopsAtInferredFailure(t *testing.T) {
	logs := map[string]LogStatus{
		"2024-01-01": LogCompleted,
		"2024-01-03": LogCompleted,
	}
	require.Equal(t, 1, CurrentStreak("2024-01-01", logs, "2024-01-03"))
}

func TestCurrentStreakIgnoresLogsBeforeCreation(t *testing.T) {
	logs := map[string]LogStatus{
		"2023-12-30": LogCompleted,
		"2023-12-31": LogCompleted,
		"2024-01-01": LogCompleted,
	}
	require.Equal(t, 1, CurrentStreak("2024-01-01", logs, "2024-01-01"))
}

func TestCurrentStreakCreatedAfterToday(t *testing.T) {
	logs := map[string]LogStatus{"2024-01-05": LogCompleted}
	require.Equal(t, 0, CurrentStreak("2024-01-10", logs, "2024-01-05"))
	require.Equal(t, 0, CurrentStreak("2024-01-01", logs, "not-a-date"))
}

func TestDayRange(t *testing.T) {
	require.Equal(t, []string{"2023-12-30", "2023-12-31", "2024-01-01"}, DayRange("2023-12-30", "2024-01-01"))
	require.Equal(t, []string{"2024-02-29"}, DayRange("2024-02-29", "2024-02-29"))
	require.Empty(t, DayRange("2024-01-05", "2024-01-01"))
	require.Empty(t, DayRange("bogus", "2024-01-01"))
	require.Empty(t, DayRange("2024-01-01", ""))
}

func TestDaysOverRange(t *testing.T) {
	days := Days("2024-01-01", fixtureLogs(), DayRange("2023-12-31", "2024-01-06"), "2024-01-06")
	want := []DayStatus{
		DayNotApplicable,
		DayCompleted,
		DayCompleted,
		DayFailed,
		DayCompleted,
		DayCompleted,
		DayPending,
	}
	require.Len(t, days, len(want))
	for i, d := range days {
		require.Equal(t, want[i], d.Status, d.Date)
	}
}

func TestRatchetNeverLowers(t *testing.T) {
	best := 0
	observed := []int{1, 3, 2, 0, 5, 4, 5}
	for _, current := range observed {
		next, _ := Ratchet(best, current)
		require.GreaterOrEqual(t, next, best)
		best = next
	}
	require.Equal(t, 5, best)

	_, raised := Ratchet(5, 5)
	require.False(t, raised)
}

func TestLastCompleted(t *testing.T) {
	require.Equal(t, "2024-01-05", LastCompleted(fixtureLogs(), "2024-01-05"))
	require.Equal(t, "2024-01-02", LastCompleted(fixtureLogs(), "2024-01-03"))
	require.Equal(t, "", LastCompleted(nil, "2024-01-03"))
}
