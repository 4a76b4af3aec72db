package transport_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/everday/everday/internal/domain/dashboard"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/testserver"
)

func TestPomodoro_AccountSessionsAndReport(t *testing.T) {
	ts := newServer(t)
	accountID, token := ts.SignUp(t, "focus@example.com")

	resp := ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/settings", Token: token})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	var st pomodoro.Settings
	resp.Decode(t, &st)
	require.Equal(t, pomodoro.DefaultSettings().PomodoroMinutes, st.PomodoroMinutes)

	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPut, Path: "/api/pomodoro/settings", Token: token,
		Body: map[string]any{"pomodoro_minutes": 25, "long_break_after_sessions": 4},
	})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)

	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPut, Path: "/api/pomodoro/settings", Token: token,
		Body: map[string]any{"short_break_minutes": 0},
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)

	started := time.Now().Add(-25 * time.Minute).UTC()
	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/pomodoro/sessions", Token: token,
		Body: map[string]any{"mode": "pomodoro", "started_at": started},
	})
	require.Equal(t, http.StatusCreated, resp.Status, "body: %s", resp.Body)
	var finish pomodoro.Finish
	resp.Decode(t, &finish)
	require.True(t, finish.Saved)
	require.Equal(t, 1500, finish.Session.DurationSeconds)
	require.Equal(t, pomodoro.ModeShortBreak, finish.Next.Mode)

	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/sessions", Token: token})
	require.Equal(t, http.StatusOK, resp.Status)
	var history []pomodoro.Session
	resp.Decode(t, &history)
	require.Len(t, history, 1)

	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/report", Token: token})
	require.Equal(t, http.StatusForbidden, resp.Status)
	require.Equal(t, "upgrade_required", resp.ErrorCode(t))

	ts.SetPlan(t, accountID, plan.TierPlus)
	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/report", Token: token})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	var report pomodoro.Report
	resp.Decode(t, &report)
	require.Equal(t, 1, report.Sessions)
	require.Equal(t, 1500, report.FocusSeconds)
	require.Equal(t, 1, report.BestStreak)
}

func TestPomodoro_GuestSettingsButNoSessions(t *testing.T) {
	ts := newServer(t)
	guestID := startGuest(t, ts)

	resp := ts.Do(t, testserver.Request{
		Method: http.MethodPut, Path: "/api/pomodoro/settings", Guest: guestID,
		Body: map[string]any{"play_sound": false},
	})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)

	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/settings", Guest: guestID})
	var st pomodoro.Settings
	resp.Decode(t, &st)
	require.False(t, st.PlaySound)

	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/pomodoro/sessions", Guest: guestID,
		Body: map[string]any{"mode": "pomodoro", "started_at": time.Now().Add(-time.Minute).UTC()},
	})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	var finish pomodoro.Finish
	resp.Decode(t, &finish)
	require.False(t, finish.Saved)
	require.Nil(t, finish.Session)

	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/pomodoro/report", Guest: guestID})
	require.Equal(t, http.StatusForbidden, resp.Status)
}

func TestDashboard_LockedThenUnlocked(t *testing.T) {
	ts := newServer(t)
	accountID, token := ts.SignUp(t, "dash@example.com")

	resp := ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/notes", Token: token,
		Body: map[string]string{"title": "idea", "content": "ship the dashboard"},
	})
	require.Equal(t, http.StatusCreated, resp.Status, "body: %s", resp.Body)

	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/dashboard", Token: token})
	require.Equal(t, http.StatusForbidden, resp.Status)
	require.Equal(t, "upgrade_required", resp.ErrorCode(t))

	ts.SetPlan(t, accountID, plan.TierPro)
	resp = ts.Do(t, testserver.Request{Method: http.MethodGet, Path: "/api/dashboard", Token: token})
	require.Equal(t, http.StatusOK, resp.Status, "body: %s", resp.Body)
	var summary dashboard.Summary
	resp.Decode(t, &summary)
	require.Equal(t, 1, summary.Today.Counts.Notes)
	require.Equal(t, 1, summary.Year.Counts.Notes)
	require.Equal(t, time.Monday, summary.Week.From.Weekday())
}

func TestFeedback(t *testing.T) {
	ts := newServer(t)
	guestID := startGuest(t, ts)
	_, token := ts.SignUp(t, "says@example.com")

	resp := ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/feedback", Guest: guestID,
		Body: map[string]string{"message": "hello"},
	})
	require.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/feedback", Token: token,
		Body: map[string]string{"message": "   "},
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, "invalid_input", resp.ErrorCode(t))

	resp = ts.Do(t, testserver.Request{
		Method: http.MethodPost, Path: "/api/feedback", Token: token,
		Body: map[string]string{"message": "  more themes please "},
	})
	require.Equal(t, http.StatusCreated, resp.Status, "body: %s", resp.Body)
	var out struct {
		Feedback struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		} `json:"feedback"`
	}
	resp.Decode(t, &out)
	require.NotEmpty(t, out.Feedback.ID)
	require.Equal(t, "more themes please", out.Feedback.Message)
}
