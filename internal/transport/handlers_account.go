package transport

import (
	"net/http"
	"strconv"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/domain/plan"
)

type signupRequest struct {
	Email string `json:"email"`
}

type signupResponse struct {
	Profile *account.Profile `json:"profile"`
	Token   string           `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p, token, err := s.app.Accounts.Register(r.Context(), req.Email, plan.TierFree)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, signupResponse{Profile: p, Token: token})
}

// account returns the authenticated account or writes 401.
func (s *Server) account(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, s.logger, ErrUnauthorized)
	}
	return accountID, ok
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	p, err := s.app.Accounts.Get(r.Context(), accountID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type profileUpdateRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	var req profileUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p, err := s.app.Accounts.UpdateProfile(r.Context(), accountID, account.UpdateRequest{
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	status, err := s.app.Accounts.PlanStatus(r.Context(), accountID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.account(w, r)
	if !ok {
		return
	}
	opts := activity.ListOptions{}
	if v := r.URL.Query().Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("type"); v != "" {
		typ := activity.EntryType(v)
		opts.Type = &typ
	}
	entries, err := s.app.Activity.Recent(r.Context(), accountID, opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type limitsResponse struct {
	Tier         string                   `json:"tier"`
	Guest        bool                     `json:"guest"`
	Unlimited    bool                     `json:"unlimited"`
	Limits       []plan.Limit             `json:"limits"`
	Capabilities map[plan.Capability]bool `json:"capabilities"`
}

func (s *Server) handleLimits(w http.ResponseWriter, _ *http.Request, scope plan.Scope, _ app.Services) error {
	writeJSON(w, http.StatusOK, limitsResponse{
		Tier:         scope.Tier.String(),
		Guest:        scope.Guest,
		Unlimited:    plan.IsPremium(scope.Tier),
		Limits:       plan.Limits(),
		Capabilities: plan.Capabilities(scope.Tier),
	})
	return nil
}
