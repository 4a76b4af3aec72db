package store

import (
	"context"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/repository"
	"github.com/stretchr/testify/require"
)

func newHabit(id, name string) *habit.Habit {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &habit.Habit{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestHabitRepository_CreateGetList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	icon := "book"
	h := newHabit("h1", "Read")
	h.IconKey = &icon
	require.NoError(t, repo.Create(ctx, "user-1", h))
	require.ErrorIs(t, repo.Create(ctx, "user-1", newHabit("h1", "Again")), repository.ErrConflict)

	got, err := repo.Get(ctx, "user-1", "h1")
	require.NoError(t, err)
	require.Equal(t, "Read", got.Name)
	require.Equal(t, "user-1", got.OwnerID)
	require.Equal(t, "book", *got.IconKey)
	require.True(t, got.CreatedAt.Equal(h.CreatedAt))

	_, err = repo.Get(ctx, "user-2", "h1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestHabitRepository_SoftDeleteCount(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u", newHabit("a", "A")))
	require.NoError(t, repo.Create(ctx, "u", newHabit("b", "B")))

	h, err := repo.Get(ctx, "u", "a")
	require.NoError(t, err)
	now := time.Now()
	h.IsDeleted = true
	h.DeletedAt = &now
	require.NoError(t, repo.Update(ctx, "u", h))

	n, err := repo.CountActive(ctx, "u")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := repo.Get(ctx, "u", "a")
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
}

func TestHabitRepository_BestStreakOnlyRises(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u", newHabit("h", "Run")))

	raised, err := repo.RaiseBestStreak(ctx, "u", "h", 5)
	require.NoError(t, err)
	require.True(t, raised)

	raised, err = repo.RaiseBestStreak(ctx, "u", "h", 3)
	require.NoError(t, err)
	require.False(t, raised)

	h, err := repo.Get(ctx, "u", "h")
	require.NoError(t, err)
	require.Equal(t, 5, h.BestStreak)

	h.BestStreak = 1
	h.Name = "Run far"
	require.NoError(t, repo.Update(ctx, "u", h))
	h, err = repo.Get(ctx, "u", "h")
	require.NoError(t, err)
	require.Equal(t, 5, h.BestStreak)
	require.Equal(t, "Run far", h.Name)

	_, err = repo.RaiseBestStreak(ctx, "u", "missing", 9)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHabitRepository_DestroyRemovesLogs(t *testing.T) {
	db := NewTestDB(t)
	habits := NewHabitRepository(db)
	logs := NewHabitLogRepository(db)
	ctx := context.Background()

	require.NoError(t, habits.Create(ctx, "u", newHabit("h", "Walk")))
	require.NoError(t, logs.Upsert(ctx, "u", habit.Log{HabitID: "h", Date: "2024-03-01", Status: habit.LogCompleted}))
	require.NoError(t, logs.Upsert(ctx, "u", habit.Log{HabitID: "h", Date: "2024-03-01", Status: habit.LogFailed}))

	l, err := logs.Get(ctx, "u", "h", "2024-03-01")
	require.NoError(t, err)
	require.Equal(t, habit.LogFailed, l.Status)

	require.NoError(t, habits.Destroy(ctx, "u", "h"))
	require.ErrorIs(t, habits.Destroy(ctx, "u", "h"), repository.ErrNotFound)

	all, err := logs.List(ctx, "u")
	require.NoError(t, err)
	require.Empty(t, all)
}
