package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service accepts feedback from accounts.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new feedback service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Submit stores a trimmed message for an account.
func (s *Service) Submit(ctx context.Context, accountID, message string) (*Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	f := &Feedback{
		ID:        uuid.NewString(),
		OwnerID:   accountID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, accountID, f); err != nil {
		return nil, fmt.Errorf("saving feedback: %w", err)
	}
	s.logger.Info("feedback received", "account_id", accountID, "length", len(message))
	return f, nil
}
