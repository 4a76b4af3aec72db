package transport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/domain/todo"
)

type colorRequest struct {
	Color *string `json:"color"`
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Color   *string `json:"color"`
}

func (s *Server) handleNoteList(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	notes, err := svc.Notes.List(r.Context(), scope)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, notes)
	return nil
}

func (s *Server) handleNoteCreate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	create := note.CreateRequest{Color: req.Color}
	if req.Title != nil {
		create.Title = *req.Title
	}
	if req.Content != nil {
		create.Content = *req.Content
	}
	n, err := svc.Notes.Create(r.Context(), scope, create)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, n)
	return nil
}

func (s *Server) handleNoteUpdate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req noteRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	n, err := svc.Notes.Update(r.Context(), scope, chi.URLParam(r, "id"), note.UpdateRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, n)
	return nil
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Notes.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleNoteColor(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req colorRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	n, err := svc.Notes.SetColor(r.Context(), scope, chi.URLParam(r, "id"), req.Color)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, n)
	return nil
}

type todoRequest struct {
	Type            todo.Kind `json:"type"`
	Title           string    `json:"title"`
	BackgroundColor *string   `json:"background_color"`
}

type moveRequest struct {
	To string `json:"to"`
}

func (s *Server) handleTodoList(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	todos, err := svc.Todos.List(r.Context(), scope, todo.Kind(r.URL.Query().Get("type")))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, todos)
	return nil
}

func (s *Server) handleTodoCreate(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req todoRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	t, err := svc.Todos.Create(r.Context(), scope, todo.CreateRequest{
		Kind:            req.Type,
		Title:           req.Title,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, t)
	return nil
}

func (s *Server) handleTodoRename(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req todoRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	t, err := svc.Todos.Rename(r.Context(), scope, chi.URLParam(r, "id"), req.Title)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

func (s *Server) handleTodoDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	if err := svc.Todos.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleTodoToggle(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	t, err := svc.Todos.Toggle(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

func (s *Server) handleTodoMove(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	t, err := svc.Todos.Move(r.Context(), scope, chi.URLParam(r, "id"), todo.Kind(req.To))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

func (s *Server) handleTodoColor(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	var req colorRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	t, err := svc.Todos.SetColor(r.Context(), scope, chi.URLParam(r, "id"), req.Color)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

type shelfRequest struct {
	shelf.Fields
	Status          shelf.Status `json:"status"`
	BackgroundColor *string      `json:"background_color"`
}

func shelfParam(r *http.Request) (shelf.Kind, error) {
	kind, ok := shelf.ParseKind(chi.URLParam(r, "shelf"))
	if !ok {
		return "", fmt.Errorf("%w: unknown shelf %q", shelf.ErrItemNotFound, chi.URLParam(r, "shelf"))
	}
	return kind, nil
}

func (s *Server) handleShelfBoard(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	columns, err := svc.Shelves.Board(r.Context(), scope, kind)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, columns)
	return nil
}

func (s *Server) handleShelfAdd(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	var req shelfRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	item, err := svc.Shelves.Add(r.Context(), scope, kind, req.Status, req.Fields, req.BackgroundColor)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, item)
	return nil
}

func (s *Server) handleShelfEdit(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	var fields shelf.Fields
	if err := decode(r, &fields); err != nil {
		return err
	}
	item, err := svc.Shelves.Edit(r.Context(), scope, kind, chi.URLParam(r, "id"), fields)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}

func (s *Server) handleShelfDelete(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	if err := svc.Shelves.Delete(r.Context(), scope, kind, chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleShelfMove(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	var req moveRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	item, err := svc.Shelves.Move(r.Context(), scope, kind, chi.URLParam(r, "id"), shelf.Status(req.To))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}

func (s *Server) handleShelfColor(w http.ResponseWriter, r *http.Request, scope plan.Scope, svc app.Services) error {
	kind, err := shelfParam(r)
	if err != nil {
		return err
	}
	var req colorRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	item, err := svc.Shelves.SetColor(r.Context(), scope, kind, chi.URLParam(r, "id"), req.Color)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}
