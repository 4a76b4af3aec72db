package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const defaultLimit = 50

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Log records an entry with the current timestamp if missing.
func (s *Service) Log(ctx context.Context, accountID string, entry *Entry) error {
	if entry == nil || accountID == "" || entry.Type == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.AccountID = accountID
	if err := s.repo.Log(ctx, accountID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Record logs an entry whose details are marshalled to JSON. Failures are logged, not returned.
func (s *Service) Record(ctx context.Context, accountID string, typ EntryType, summary string, details any) {
	entry := &Entry{Type: typ, Summary: summary}
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			entry.Details = string(raw)
		}
	}
	if err := s.Log(ctx, accountID, entry); err != nil {
		s.logger.Warn("activity not recorded", "account_id", accountID, "type", typ, "error", err)
	}
}

// Recent lists activity entries, newest first.
func (s *Service) Recent(ctx context.Context, accountID string, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	entries, err := s.repo.List(ctx, accountID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
