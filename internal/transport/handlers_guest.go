package transport

import (
	"net/http"
)

func (s *Server) handleGuestCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.app.Guests.Create(r.Context())
	w.Header().Set(GuestHeader, sess.ID)
	writeJSON(w, http.StatusCreated, sess.Status())
}

func (s *Server) handleGuestStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := GuestFromContext(r.Context())
	if !ok {
		writeError(w, r, s.logger, ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, sess.Status())
}

func (s *Server) handleGuestDiscard(w http.ResponseWriter, r *http.Request) {
	sess, ok := GuestFromContext(r.Context())
	if !ok {
		writeError(w, r, s.logger, ErrUnauthorized)
		return
	}
	if err := s.app.Guests.Discard(r.Context(), sess.ID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGuestMerge moves the guest ledger into the signed-in account.
func (s *Server) handleGuestMerge(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	sess, ok := GuestFromContext(r.Context())
	if !ok {
		writeError(w, r, s.logger, ErrUnauthorized)
		return
	}
	res, err := s.app.Merge.Reconcile(r.Context(), sess, accountID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
