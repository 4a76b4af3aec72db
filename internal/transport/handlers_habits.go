package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/domain/plan"
)

type habitRequest struct {
	Name    *string `json:"name"`
	IconKey *string `json:"icon_key"`
}

type dayRequest struct {
	Status *habit.LogStatus `json:"status"`
}

// writeBackTimeout bounds how long a board's best-streak write-back is observed.
const writeBackTimeout = 30 * time.Second

// handleHabitBoard returns the board without waiting for best-streak write-back.
func (s *Server) handleHabitBoard(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	board, wb, err := svc.Habits.Board(r.Context(), scope)
	if err != nil {
		return err
	}
	wb.Observe(s.logger.With("owner_id", scope.OwnerID), writeBackTimeout)
	writeJSON(w, http.StatusOK, board)
	return nil
}

func (s *Server) handleHabitCreate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	create := habit.CreateRequest{IconKey: req.IconKey}
	if req.Name != nil {
		create.Name = *req.Name
	}
	h, err := svc.Habits.Create(r.Context(), scope, create)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, h)
	return nil
}

func (s *Server) handleHabitUpdate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	h, err := svc.Habits.Update(r.Context(), scope, chi.URLParam(r, "id"), habit.UpdateRequest{
		Name:    req.Name,
		IconKey: req.IconKey,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, h)
	return nil
}

func (s *Server) handleHabitDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Habits.SoftDelete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleHabitRestore(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	h, err := svc.Habits.Restore(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, h)
	return nil
}

func (s *Server) handleHabitDestroy(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Habits.Destroy(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleHabitDay(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req dayRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	log, err := svc.Habits.MarkDay(r.Context(), scope, chi.URLParam(r, "id"), chi.URLParam(r, "date"), req.Status)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, log)
	return nil
}
