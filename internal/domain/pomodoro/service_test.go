package pomodoro_test

import (
	"context"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/repository"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	freeScope  = plan.Scope{OwnerID: "acct-1", Tier: plan.TierFree}
	plusScope  = plan.Scope{OwnerID: "acct-1", Tier: plan.TierPlus}
	guestScope = plan.Scope{OwnerID: "guest-1", Tier: plan.TierFree, Guest: true}
	fixedNow   = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
)

func newService(repo pomodoro.Repository) *pomodoro.Service {
	return pomodoro.NewService(repo, nil,
		pomodoro.WithClock(func() time.Time { return fixedNow }),
		pomodoro.WithLocation(time.UTC))
}

func TestPomodoroService_SettingsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PomodoroRepository{}
	repo.On("GetSettings", ctx, "acct-1").Return(nil, repository.ErrNotFound)

	st, err := newService(repo).Settings(ctx, freeScope)
	require.NoError(t, err)
	require.Equal(t, 20, st.PomodoroMinutes)
	require.Equal(t, 5, st.ShortBreakMinutes)
	require.Equal(t, 15, st.LongBreakMinutes)
	require.Equal(t, 2, st.LongBreakAfterSessions)
	require.True(t, st.PlaySound)
	require.Equal(t, "acct-1", st.OwnerID)
}

func TestPomodoroService_SaveSettingsMergesAndValidates(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PomodoroRepository{}
	repo.On("GetSettings", ctx, "acct-1").Return(nil, repository.ErrNotFound)
	repo.On("UpsertSettings", ctx, "acct-1", mock.MatchedBy(func(st *pomodoro.Settings) bool {
		return st.PomodoroMinutes == 25 && st.ShortBreakMinutes == 5 && !st.PlaySound
	})).Return(nil).Once()

	svc := newService(repo)
	minutes, quiet := 25, false
	st, err := svc.SaveSettings(ctx, freeScope, pomodoro.SettingsUpdate{PomodoroMinutes: &minutes, PlaySound: &quiet})
	require.NoError(t, err)
	require.Equal(t, fixedNow, st.UpdatedAt)

	zero := 0
	_, err = svc.SaveSettings(ctx, freeScope, pomodoro.SettingsUpdate{LongBreakMinutes: &zero})
	require.ErrorIs(t, err, pomodoro.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestPomodoroService_FinishSavesAccountSession(t *testing.T) {
	ctx := context.Background()
	started := fixedNow.Add(-20 * time.Minute)
	repo := &mocks.PomodoroRepository{}
	repo.On("GetSettings", ctx, "acct-1").Return(nil, repository.ErrNotFound)
	repo.On("CreateSession", ctx, "acct-1", mock.MatchedBy(func(s *pomodoro.Session) bool {
		return s.Mode == pomodoro.ModePomodoro && s.DurationSeconds == 1200 && s.Completed &&
			s.StartedAt.Equal(started) && s.EndedAt.Equal(fixedNow)
	})).Return(nil)

	out, err := newService(repo).Finish(ctx, freeScope, pomodoro.FinishRequest{Mode: pomodoro.ModePomodoro, StartedAt: started})
	require.NoError(t, err)
	require.True(t, out.Saved)
	require.NotNil(t, out.Session)
	require.Equal(t, pomodoro.Step{Mode: pomodoro.ModeShortBreak, Seconds: 300}, out.Next)
	repo.AssertExpectations(t)
}

func TestPomodoroService_FinishNeverSavesGuestSession(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PomodoroRepository{}
	repo.On("GetSettings", ctx, "guest-1").Return(nil, repository.ErrNotFound)

	out, err := newService(repo).Finish(ctx, guestScope, pomodoro.FinishRequest{
		Mode: pomodoro.ModeShortBreak, StartedAt: fixedNow.Add(-5 * time.Minute), SessionsSinceLong: 1,
	})
	require.NoError(t, err)
	require.False(t, out.Saved)
	require.Nil(t, out.Session)
	require.Equal(t, pomodoro.ModeLongBreak, out.Next.Mode)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestPomodoroService_FinishRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PomodoroRepository{}
	repo.On("GetSettings", ctx, "acct-1").Return(nil, repository.ErrNotFound)
	svc := newService(repo)

	_, err := svc.Finish(ctx, freeScope, pomodoro.FinishRequest{Mode: "nap", StartedAt: fixedNow})
	require.ErrorIs(t, err, pomodoro.ErrInvalidInput)

	later := fixedNow.Add(time.Hour)
	_, err = svc.Finish(ctx, freeScope, pomodoro.FinishRequest{Mode: pomodoro.ModePomodoro, StartedAt: later})
	require.ErrorIs(t, err, pomodoro.ErrInvalidInput)
}

func TestNextStep_Cycle(t *testing.T) {
	st := pomodoro.DefaultSettings()

	step := pomodoro.NextStep(st, pomodoro.ModePomodoro, 0)
	require.Equal(t, pomodoro.ModeShortBreak, step.Mode)
	require.Equal(t, 0, step.SessionsSinceLong)

	step = pomodoro.NextStep(st, pomodoro.ModeShortBreak, 0)
	require.Equal(t, pomodoro.ModePomodoro, step.Mode)
	require.Equal(t, 1, step.SessionsSinceLong)
	require.Equal(t, 1200, step.Seconds)

	step = pomodoro.NextStep(st, pomodoro.ModeShortBreak, 1)
	require.Equal(t, pomodoro.ModeLongBreak, step.Mode)
	require.Equal(t, 900, step.Seconds)

	step = pomodoro.NextStep(st, pomodoro.ModeLongBreak, 2)
	require.Equal(t, pomodoro.ModePomodoro, step.Mode)
	require.Equal(t, 0, step.SessionsSinceLong)
}

func TestPomodoroService_ReportRequiresPremium(t *testing.T) {
	repo := &mocks.PomodoroRepository{}
	_, err := newService(repo).Report(context.Background(), freeScope)
	require.ErrorIs(t, err, plan.ErrCapabilityLocked)
	repo.AssertNotCalled(t, "ListSessions", mock.Anything, mock.Anything, mock.Anything)
}

func TestPomodoroService_Report(t *testing.T) {
	ctx := context.Background()
	at := func(day string) time.Time {
		d, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		return d.Add(9 * time.Hour)
	}
	focus := func(day string, secs int) pomodoro.Session {
		return pomodoro.Session{Mode: pomodoro.ModePomodoro, EndedAt: at(day), DurationSeconds: secs, Completed: true}
	}
	sessions := []pomodoro.Session{
		focus("2024-03-01", 1200),
		focus("2024-03-02", 1200),
		focus("2024-03-03", 1200),
		focus("2024-03-09", 600),
		focus("2024-03-10", 1200),
		focus("2024-03-10", 600),
		{Mode: pomodoro.ModePomodoro, EndedAt: at("2024-03-05"), DurationSeconds: 900, Completed: false},
	}
	repo := &mocks.PomodoroRepository{}
	repo.On("ListSessions", ctx, "acct-1", pomodoro.ModePomodoro).Return(sessions, nil)

	r, err := newService(repo).Report(ctx, plusScope)
	require.NoError(t, err)
	require.Equal(t, 6, r.Sessions)
	require.Equal(t, 6000, r.FocusSeconds)
	require.Equal(t, 5, r.ActiveDays)
	require.InDelta(t, 1200, r.Averages.Daily, 0.001)
	require.InDelta(t, 6000, r.Averages.Weekly, 0.001)
	require.InDelta(t, 6000, r.Averages.Yearly, 0.001)
	require.Equal(t, 2, r.CurrentStreak)
	require.Equal(t, 3, r.BestStreak)
}

func TestSummarise_Empty(t *testing.T) {
	r := pomodoro.Summarise(nil, fixedNow, time.UTC)
	require.Zero(t, r.FocusSeconds)
	require.Zero(t, r.Averages.Daily)
	require.Zero(t, r.CurrentStreak)
	require.Zero(t, r.BestStreak)
}
