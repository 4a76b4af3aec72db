package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/journal"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/sourcedump"
)

// handleJournalMonth lists one month, the current one by default.
func (s *Server) handleJournalMonth(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: year must be a number", journal.ErrInvalidInput)
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return fmt.Errorf("%w: month must be 1-12", journal.ErrInvalidInput)
		}
		month = time.Month(m)
	}

	entries, err := svc.Journal.Month(r.Context(), scope, year, month)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, entries)
	return nil
}

func (s *Server) handleJournalReport(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	report, err := svc.Journal.Report(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report)
	return nil
}

func (s *Server) handleJournalGet(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	e, err := svc.Journal.Get(r.Context(), scope, chi.URLParam(r, "date"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, e)
	return nil
}

func (s *Server) handleJournalSave(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req journal.SaveRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	e, err := svc.Journal.Save(r.Context(), scope, chi.URLParam(r, "date"), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, e)
	return nil
}

func (s *Server) handleJournalDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Journal.Delete(r.Context(), scope, chi.URLParam(r, "date")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type sourceRequest struct {
	Title           *string  `json:"title"`
	Links           *string  `json:"links"`
	TextContent     *string  `json:"text_content"`
	Screenshots     []string `json:"screenshots"`
	BackgroundColor *string  `json:"background_color"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) handleSourceList(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	dumps, err := svc.Sources.List(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, dumps)
	return nil
}

func (s *Server) handleSourceCreate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req sourceRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	d, err := svc.Sources.Create(r.Context(), scope, sourcedump.CreateRequest{
		Title:           deref(req.Title),
		Links:           deref(req.Links),
		TextContent:     deref(req.TextContent),
		Screenshots:     req.Screenshots,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, d)
	return nil
}

func (s *Server) handleSourceUpdate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req sourceRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	d, err := svc.Sources.Update(r.Context(), scope, chi.URLParam(r, "id"), sourcedump.UpdateRequest{
		Title:       req.Title,
		Links:       req.Links,
		TextContent: req.TextContent,
		Screenshots: req.Screenshots,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, d)
	return nil
}

func (s *Server) handleSourceDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Sources.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleSourceColor(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req colorRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	d, err := svc.Sources.SetColor(r.Context(), scope, chi.URLParam(r, "id"), req.Color)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, d)
	return nil
}
