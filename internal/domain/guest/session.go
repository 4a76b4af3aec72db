package guest

import (
	"sync"
	"time"
)

// LeaveWarning is shown to a guest holding unsaved data.
const LeaveWarning = "You are using EverDay as a guest. Your data lives only in this session and will be lost if you leave without signing up."

// Session is one guest's ledger plus its one-shot merge state. The merge
// state is never persisted.
type Session struct {
	ID        string
	Ledger    *Ledger
	CreatedAt time.Time

	mergeMu sync.Mutex
	merged  bool
}

// Status describes what a guest would lose by leaving.
type Status struct {
	SessionID    string         `json:"session_id"`
	HasData      bool           `json:"has_data"`
	ConfirmLeave bool           `json:"confirm_leave"`
	Merged       bool           `json:"merged"`
	Counts       map[Domain]int `json:"counts"`
	Warning      string         `json:"warning"`
}

// Status reports the session's data state.
func (s *Session) Status() Status {
	hasData := !s.Ledger.IsEmpty()
	return Status{
		SessionID:    s.ID,
		HasData:      hasData,
		ConfirmLeave: hasData,
		Merged:       s.Merged(),
		Counts:       s.Ledger.Counts(),
		Warning:      LeaveWarning,
	}
}

// Merged reports whether a merge completed in this session.
func (s *Session) Merged() bool {
	s.mergeMu.Lock()
	defer s.mergeMu.Unlock()
	return s.merged
}

// RunMerge runs fn unless a merge already completed. Calls are serialized and
// only a nil result from fn marks the session merged.
func (s *Session) RunMerge(fn func() error) (skipped bool, err error) {
	s.mergeMu.Lock()
	defer s.mergeMu.Unlock()
	if s.merged {
		return true, nil
	}
	if err := fn(); err != nil {
		return false, err
	}
	s.merged = true
	return false, nil
}
