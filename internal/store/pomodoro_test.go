package store

import (
	"context"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestPomodoroRepository_SettingsUpsertByOwner(t *testing.T) {
	repo := NewPomodoroRepository(NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetSettings(ctx, "u")
	require.ErrorIs(t, err, repository.ErrNotFound)

	st := pomodoro.DefaultSettings()
	st.UpdatedAt = stamp
	require.NoError(t, repo.UpsertSettings(ctx, "u", &st))

	st.PomodoroMinutes = 50
	st.PlaySound = false
	require.NoError(t, repo.UpsertSettings(ctx, "u", &st))

	got, err := repo.GetSettings(ctx, "u")
	require.NoError(t, err)
	require.Equal(t, 50, got.PomodoroMinutes)
	require.False(t, got.PlaySound)
	require.Equal(t, 2, got.LongBreakAfterSessions)

	_, err = repo.GetSettings(ctx, "other")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPomodoroRepository_SessionsFilterByMode(t *testing.T) {
	repo := NewPomodoroRepository(NewTestDB(t))
	ctx := context.Background()

	add := func(id string, mode pomodoro.Mode, ended time.Time) {
		require.NoError(t, repo.CreateSession(ctx, "u", &pomodoro.Session{
			ID: id, Mode: mode, StartedAt: ended.Add(-time.Minute), EndedAt: ended,
			DurationSeconds: 60, Completed: true, CreatedAt: ended,
		}))
	}
	add("late", pomodoro.ModePomodoro, stamp.Add(time.Hour))
	add("early", pomodoro.ModePomodoro, stamp)
	add("break", pomodoro.ModeShortBreak, stamp.Add(30*time.Minute))

	focus, err := repo.ListSessions(ctx, "u", pomodoro.ModePomodoro)
	require.NoError(t, err)
	require.Len(t, focus, 2)
	require.Equal(t, "early", focus[0].ID)
	require.True(t, focus[0].Completed)

	all, err := repo.ListSessions(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	none, err := repo.ListSessions(ctx, "someone-else", "")
	require.NoError(t, err)
	require.Empty(t, none)

	err = repo.CreateSession(ctx, "u", &pomodoro.Session{ID: "early", Mode: pomodoro.ModePomodoro, StartedAt: stamp, EndedAt: stamp, CreatedAt: stamp})
	require.ErrorIs(t, err, repository.ErrConflict)
}
