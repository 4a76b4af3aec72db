package transport

import (
	"net/http"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/pomodoro"
)

func (s *Server) handlePomodoroSettings(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	st, err := svc.Pomodoro.Settings(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, st)
	return nil
}

func (s *Server) handlePomodoroSaveSettings(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req pomodoro.SettingsUpdate
	if err := decode(r, &req); err != nil {
		return err
	}
	st, err := svc.Pomodoro.SaveSettings(r.Context(), scope, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, st)
	return nil
}

// handlePomodoroFinish records a finished timer. Guests get the next step
// with saved set to false.
func (s *Server) handlePomodoroFinish(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req pomodoro.FinishRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	out, err := svc.Pomodoro.Finish(r.Context(), scope, req)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if out.Saved {
		status = http.StatusCreated
	}
	writeJSON(w, status, out)
	return nil
}

func (s *Server) handlePomodoroHistory(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	sessions, err := svc.Pomodoro.History(r.Context(), scope, pomodoro.Mode(r.URL.Query().Get("mode")))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sessions)
	return nil
}

func (s *Server) handlePomodoroReport(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	report, err := svc.Pomodoro.Report(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report)
	return nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	summary, err := svc.Dashboard.Summary(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

type feedbackRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	var req feedbackRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	f, err := s.app.Feedback.Submit(r.Context(), accountID, req.Message)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"feedback": f})
}
