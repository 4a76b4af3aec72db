package todo

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

// Service handles todo business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new todo service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create adds a todo to its list if the list is under its ceiling.
func (s *Service) Create(ctx context.Context, scope plan.Scope, req CreateRequest) (*Todo, error) {
	kind := req.Kind
	if kind == "" {
		kind = KindTask
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, kind)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.BackgroundColor != nil {
		if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
			return nil, err
		}
	}
	if err := s.checkCeiling(ctx, scope, "", kind); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Todo{
		ID:              uuid.NewString(),
		OwnerID:         scope.OwnerID,
		Kind:            kind,
		Title:           title,
		BackgroundColor: req.BackgroundColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, scope.OwnerID, t); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return t, nil
}

// Rename changes the title of a todo.
func (s *Service) Rename(ctx context.Context, scope plan.Scope, id, title string) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return s.mutate(ctx, scope, id, func(t *Todo) { t.Title = title })
}

// Toggle flips the completion flag.
func (s *Service) Toggle(ctx context.Context, scope plan.Scope, id string) (*Todo, error) {
	return s.mutate(ctx, scope, id, func(t *Todo) { t.IsCompleted = !t.IsCompleted })
}

// SetColor changes the card color. A nil color resets to the default.
func (s *Service) SetColor(ctx context.Context, scope plan.Scope, id string, color *string) (*Todo, error) {
	if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, id, func(t *Todo) { t.BackgroundColor = color })
}

// Move puts a todo on another list, checking the destination's ceiling.
func (s *Service) Move(ctx context.Context, scope plan.Scope, id string, to Kind) (*Todo, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, to)
	}
	t, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if t.Kind == to {
		return t, nil
	}
	if err := s.checkCeiling(ctx, scope, t.Kind, to); err != nil {
		return nil, err
	}
	t.Kind = to
	if err := s.save(ctx, scope, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a todo.
func (s *Service) Delete(ctx context.Context, scope plan.Scope, id string) error {
	if err := s.repo.Delete(ctx, scope.OwnerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}

// List returns the todos of one list, or of every list when kind is empty.
func (s *Service) List(ctx context.Context, scope plan.Scope, kind Kind) ([]Todo, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, kind)
	}
	todos, err := s.repo.List(ctx, scope.OwnerID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (s *Service) checkCeiling(ctx context.Context, scope plan.Scope, from, to Kind) error {
	count, err := s.repo.Count(ctx, scope.OwnerID, to)
	if err != nil {
		return fmt.Errorf("counting todos: %w", err)
	}
	dec := plan.CheckMove(plan.DomainTodos, from.Bucket(), to.Bucket(), count, scope.Tier)
	if !dec.Allowed {
		s.logger.Info("todo denied by plan", "owner_id", scope.OwnerID, "type", to, "count", count)
	}
	return dec.Err()
}

func (s *Service) mutate(ctx context.Context, scope plan.Scope, id string, fn func(*Todo)) (*Todo, error) {
	t, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	fn(t)
	if err := s.save(ctx, scope, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) get(ctx context.Context, scope plan.Scope, id string) (*Todo, error) {
	t, err := s.repo.Get(ctx, scope.OwnerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("loading todo: %w", err)
	}
	return t, nil
}

func (s *Service) save(ctx context.Context, scope plan.Scope, t *Todo) error {
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, scope.OwnerID, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("updating todo: %w", err)
	}
	return nil
}
