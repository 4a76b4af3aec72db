package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/google/uuid"
)

// Service handles note business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new note service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create adds a note if the plan allows another one.
func (s *Service) Create(ctx context.Context, scope plan.Scope, req CreateRequest) (*Note, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" && content == "" {
		return nil, fmt.Errorf("%w: title or content is required", ErrInvalidInput)
	}
	if req.Color != nil {
		if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.Count(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("counting notes: %w", err)
	}
	if dec := plan.Check(plan.DomainNotes, plan.BucketAll, count, scope.Tier); !dec.Allowed {
		s.logger.Info("note creation denied by plan", "owner_id", scope.OwnerID, "count", count)
		return nil, dec.Err()
	}

	now := time.Now().UTC()
	n := &Note{
		ID:        uuid.NewString(),
		OwnerID:   scope.OwnerID,
		Title:     title,
		Content:   content,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, scope.OwnerID, n); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return n, nil
}

// Update edits the title or content of a note.
func (s *Service) Update(ctx context.Context, scope plan.Scope, id string, req UpdateRequest) (*Note, error) {
	n, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		n.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		n.Content = strings.TrimSpace(*req.Content)
	}
	if n.Title == "" && n.Content == "" {
		return nil, fmt.Errorf("%w: title or content is required", ErrInvalidInput)
	}
	return n, s.save(ctx, scope, n)
}

// SetColor changes the card color. A nil color resets to the default.
func (s *Service) SetColor(ctx context.Context, scope plan.Scope, id string, color *string) (*Note, error) {
	if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
		return nil, err
	}
	n, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	n.Color = color
	return n, s.save(ctx, scope, n)
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, scope plan.Scope, id string) error {
	if err := s.repo.Delete(ctx, scope.OwnerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// Get loads a single note.
func (s *Service) Get(ctx context.Context, scope plan.Scope, id string) (*Note, error) {
	n, err := s.repo.Get(ctx, scope.OwnerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("loading note: %w", err)
	}
	return n, nil
}

// List returns the owner's notes newest first.
func (s *Service) List(ctx context.Context, scope plan.Scope) ([]Note, error) {
	notes, err := s.repo.List(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

func (s *Service) save(ctx context.Context, scope plan.Scope, n *Note) error {
	n.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, scope.OwnerID, n); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("updating note: %w", err)
	}
	return nil
}
