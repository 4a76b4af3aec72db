package habit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	freeScope    = plan.Scope{OwnerID: "acct-1", Tier: plan.TierFree}
	premiumScope = plan.Scope{OwnerID: "acct-1", Tier: plan.TierPlus}
)

func fixedClock(day string) habit.Option {
	ts, _ := time.Parse(habit.DateLayout, day)
	return habit.WithClock(func() time.Time { return ts.Add(15 * time.Hour) })
}

func newService(habits *mocks.HabitRepository, logs *mocks.HabitLogRepository, day string) *habit.Service {
	return habit.NewService(habits, logs, nil, nil, fixedClock(day), habit.WithLocation(time.UTC))
}

func createdOn(day string) time.Time {
	ts, _ := time.Parse(habit.DateLayout, day)
	return ts.Add(9 * time.Hour)
}

func TestHabitService_CreateEnforcesCeiling(t *testing.T) {
	ctx := context.Background()
	habits := &mocks.HabitRepository{}
	habits.On("CountActive", ctx, "acct-1").Return(7, nil).Once()

	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	_, err := svc.Create(ctx, freeScope, habit.CreateRequest{Name: "Read"})
	require.ErrorIs(t, err, plan.ErrLimitReached)

	var limitErr *plan.LimitError
	require.True(t, errors.As(err, &limitErr))
	require.Equal(t, 7, limitErr.Decision.Ceiling)
	habits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHabitService_CreatePremiumIgnoresCeiling(t *testing.T) {
	ctx := context.Background()
	habits := &mocks.HabitRepository{}
	habits.On("CountActive", ctx, "acct-1").Return(40, nil)
	habits.On("Create", ctx, "acct-1", mock.MatchedBy(func(h *habit.Habit) bool {
		return h.Name == "Read" && h.IconKey != nil && *h.IconKey == "book" && h.ID != ""
	})).Return(nil)

	icon := " book "
	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	h, err := svc.Create(ctx, premiumScope, habit.CreateRequest{Name: "  Read ", IconKey: &icon})
	require.NoError(t, err)
	require.Equal(t, "acct-1", h.OwnerID)
	habits.AssertExpectations(t)
}

func TestHabitService_CreateRequiresName(t *testing.T) {
	svc := newService(&mocks.HabitRepository{}, &mocks.HabitLogRepository{}, "2024-01-05")
	_, err := svc.Create(context.Background(), freeScope, habit.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, habit.ErrInvalidInput)
}

func TestHabitService_MarkDayToggles(t *testing.T) {
	ctx := context.Background()
	h := &habit.Habit{ID: "h1", OwnerID: "acct-1", Name: "Run", CreatedAt: createdOn("2024-01-01")}

	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "h1").Return(h, nil)
	logs := &mocks.HabitLogRepository{}
	logs.On("Get", ctx, "acct-1", "h1", "2024-01-03").
		Return(&habit.Log{HabitID: "h1", Date: "2024-01-03", Status: habit.LogCompleted}, nil).Once()
	logs.On("Upsert", ctx, "acct-1", habit.Log{HabitID: "h1", Date: "2024-01-03", Status: habit.LogFailed}).Return(nil).Once()

	svc := newService(habits, logs, "2024-01-05")
	got, err := svc.MarkDay(ctx, freeScope, "h1", "2024-01-03", nil)
	require.NoError(t, err)
	require.Equal(t, habit.LogFailed, got.Status)

	logs.On("Get", ctx, "acct-1", "h1", "2024-01-04").Return(nil, repository.ErrNotFound).Once()
	logs.On("Upsert", ctx, "acct-1", habit.Log{HabitID: "h1", Date: "2024-01-04", Status: habit.LogCompleted}).Return(nil).Once()
	got, err = svc.MarkDay(ctx, freeScope, "h1", "2024-01-04", nil)
	require.NoError(t, err)
	require.Equal(t, habit.LogCompleted, got.Status)
	logs.AssertExpectations(t)
}

func TestHabitService_MarkDaySameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	h := &habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-01")}
	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "h1").Return(h, nil)
	logs := &mocks.HabitLogRepository{}
	logs.On("Get", ctx, "acct-1", "h1", "2024-01-02").
		Return(&habit.Log{HabitID: "h1", Date: "2024-01-02", Status: habit.LogFailed}, nil)

	failed := habit.LogFailed
	svc := newService(habits, logs, "2024-01-05")
	got, err := svc.MarkDay(ctx, freeScope, "h1", "2024-01-02", &failed)
	require.NoError(t, err)
	require.Equal(t, habit.LogFailed, got.Status)
	logs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestHabitService_MarkDayRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	h := &habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-02")}
	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "h1").Return(h, nil)

	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	_, err := svc.MarkDay(ctx, freeScope, "h1", "2024-01-01", nil)
	require.ErrorIs(t, err, habit.ErrBeforeCreation)

	_, err = svc.MarkDay(ctx, freeScope, "h1", "2024-01-06", nil)
	require.ErrorIs(t, err, habit.ErrFutureDay)

	_, err = svc.MarkDay(ctx, freeScope, "h1", "01/03/2024", nil)
	require.ErrorIs(t, err, habit.ErrInvalidInput)
}

func TestHabitService_MarkDayMissingHabit(t *testing.T) {
	ctx := context.Background()
	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "nope").Return(nil, repository.ErrNotFound)

	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	_, err := svc.MarkDay(ctx, freeScope, "nope", "2024-01-05", nil)
	require.ErrorIs(t, err, habit.ErrHabitNotFound)
}

func TestHabitService_BoardFixture(t *testing.T) {
	ctx := context.Background()
	h := habit.Habit{ID: "h1", OwnerID: "acct-1", Name: "Run", CreatedAt: createdOn("2024-01-01"), BestStreak: 1}
	gone := habit.Habit{ID: "h2", OwnerID: "acct-1", Name: "Old", CreatedAt: createdOn("2023-06-01"), IsDeleted: true}

	habits := &mocks.HabitRepository{}
	habits.On("List", ctx, "acct-1").Return([]habit.Habit{h, gone}, nil)
	habits.On("RaiseBestStreak", mock.Anything, "acct-1", "h1", 2).Return(true, nil).Once()
	logs := &mocks.HabitLogRepository{}
	logs.On("List", ctx, "acct-1").Return([]habit.Log{
		{HabitID: "h1", Date: "2024-01-01", Status: habit.LogCompleted},
		{HabitID: "h1", Date: "2024-01-02", Status: habit.LogCompleted},
		{HabitID: "h1", Date: "2024-01-03", Status: habit.LogFailed},
		{HabitID: "h1", Date: "2024-01-04", Status: habit.LogCompleted},
		{HabitID: "h1", Date: "2024-01-05", Status: habit.LogCompleted},
	}, nil)

	svc := newService(habits, logs, "2024-01-05")
	board, wb, err := svc.Board(ctx, premiumScope)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", board.Today)
	require.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}, board.Dates)
	require.True(t, board.StreakVisible)
	require.False(t, board.LimitReached)
	require.Len(t, board.Deleted, 1)
	require.Len(t, board.Habits, 1)

	view := board.Habits[0]
	require.NotNil(t, view.Streak)
	require.Equal(t, 2, view.Streak.Current)
	require.Equal(t, 2, view.Streak.Best)
	require.Equal(t, "2024-01-05", view.LastCompleted)
	require.Equal(t, habit.DayFailed, view.Days[2].Status)

	require.Equal(t, []habit.Raise{{HabitID: "h1", From: 1, To: 2}}, wb.Raised)
	require.NoError(t, wb.Wait(ctx))
	habits.AssertExpectations(t)
}

func TestHabitService_BoardHidesStreakOnFree(t *testing.T) {
	ctx := context.Background()
	h := habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-05"), BestStreak: 9}

	habits := &mocks.HabitRepository{}
	habits.On("List", ctx, "acct-1").Return([]habit.Habit{h}, nil)
	logs := &mocks.HabitLogRepository{}
	logs.On("List", ctx, "acct-1").Return([]habit.Log{}, nil)

	svc := newService(habits, logs, "2024-01-05")
	board, wb, err := svc.Board(ctx, freeScope)
	require.NoError(t, err)
	require.False(t, board.StreakVisible)
	require.Nil(t, board.Habits[0].Streak)
	require.Zero(t, board.Habits[0].BestStreak)
	require.Equal(t, habit.DayPending, board.Habits[0].Days[0].Status)
	require.Empty(t, wb.Raised)
	require.NoError(t, wb.Wait(ctx))
	habits.AssertNotCalled(t, "RaiseBestStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHabitService_BoardWriteBackFailureIsObservable(t *testing.T) {
	ctx := context.Background()
	h := habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-05")}

	habits := &mocks.HabitRepository{}
	habits.On("List", ctx, "acct-1").Return([]habit.Habit{h}, nil)
	habits.On("RaiseBestStreak", mock.Anything, "acct-1", "h1", 1).Return(false, errors.New("db down"))
	logs := &mocks.HabitLogRepository{}
	logs.On("List", ctx, "acct-1").Return([]habit.Log{{HabitID: "h1", Date: "2024-01-05", Status: habit.LogCompleted}}, nil)

	svc := newService(habits, logs, "2024-01-05")
	board, wb, err := svc.Board(ctx, premiumScope)
	require.NoError(t, err)
	require.Equal(t, 1, board.Habits[0].Streak.Best)
	require.ErrorContains(t, wb.Wait(ctx), "db down")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	<-wb.Observe(logger, time.Second)
	require.Contains(t, buf.String(), "best streak write-back failed")
	require.Contains(t, buf.String(), "db down")
}

func TestHabitService_BoardHidesBestStreakOfDeletedOnFree(t *testing.T) {
	ctx := context.Background()
	live := habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-01"), BestStreak: 4}
	gone := habit.Habit{ID: "h2", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-01"), BestStreak: 6, IsDeleted: true}

	habits := &mocks.HabitRepository{}
	habits.On("List", ctx, "acct-1").Return([]habit.Habit{live, gone}, nil)
	logs := &mocks.HabitLogRepository{}
	logs.On("List", ctx, "acct-1").Return([]habit.Log{}, nil)

	svc := newService(habits, logs, "2024-01-05")
	board, _, err := svc.Board(ctx, freeScope)
	require.NoError(t, err)
	require.Zero(t, board.Habits[0].BestStreak)
	require.Zero(t, board.Deleted[0].BestStreak)

	board, _, err = svc.Board(ctx, premiumScope)
	require.NoError(t, err)
	require.Equal(t, 4, board.Habits[0].BestStreak)
	require.Equal(t, 6, board.Deleted[0].BestStreak)
}

func TestHabitService_RestoreRechecksCeiling(t *testing.T) {
	ctx := context.Background()
	h := &habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-01"), IsDeleted: true}
	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "h1").Return(h, nil)
	habits.On("CountActive", ctx, "acct-1").Return(7, nil)

	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	_, err := svc.Restore(ctx, freeScope, "h1")
	require.ErrorIs(t, err, plan.ErrLimitReached)
}

func TestHabitService_SoftDeleteAndDestroy(t *testing.T) {
	ctx := context.Background()
	h := &habit.Habit{ID: "h1", OwnerID: "acct-1", CreatedAt: createdOn("2024-01-01")}
	habits := &mocks.HabitRepository{}
	habits.On("Get", ctx, "acct-1", "h1").Return(h, nil)
	habits.On("Update", ctx, "acct-1", mock.MatchedBy(func(u *habit.Habit) bool {
		return u.IsDeleted && u.DeletedAt != nil
	})).Return(nil)
	habits.On("Destroy", ctx, "acct-1", "h1").Return(nil).Once()
	habits.On("Destroy", ctx, "acct-1", "h1").Return(repository.ErrNotFound).Once()

	svc := newService(habits, &mocks.HabitLogRepository{}, "2024-01-05")
	require.NoError(t, svc.SoftDelete(ctx, freeScope, "h1"))
	require.NoError(t, svc.Destroy(ctx, freeScope, "h1"))
	require.ErrorIs(t, svc.Destroy(ctx, freeScope, "h1"), habit.ErrHabitNotFound)
	habits.AssertExpectations(t)
}
