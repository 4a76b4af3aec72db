package sourcedump

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

// Service handles source dump business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new source dump service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create adds a source dump if the plan allows another one.
func (s *Service) Create(ctx context.Context, scope plan.Scope, req CreateRequest) (*Dump, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	shots := cleanPaths(req.Screenshots)
	if len(shots) > 0 {
		if err := plan.Require(plan.CapScreenshots, scope.Tier); err != nil {
			return nil, err
		}
	}
	if req.BackgroundColor != nil {
		if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.Count(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("counting source dumps: %w", err)
	}
	if dec := plan.Check(plan.DomainSourceDumps, plan.BucketAll, count, scope.Tier); !dec.Allowed {
		s.logger.Info("source dump creation denied by plan", "owner_id", scope.OwnerID, "count", count)
		return nil, dec.Err()
	}

	now := time.Now().UTC()
	d := &Dump{
		ID:              uuid.NewString(),
		OwnerID:         scope.OwnerID,
		Title:           title,
		Links:           strings.TrimSpace(req.Links),
		TextContent:     req.TextContent,
		Screenshots:     shots,
		BackgroundColor: req.BackgroundColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, scope.OwnerID, d); err != nil {
		return nil, fmt.Errorf("creating source dump: %w", err)
	}
	return d, nil
}

// Update edits a source dump.
func (s *Service) Update(ctx context.Context, scope plan.Scope, id string, req UpdateRequest) (*Dump, error) {
	d, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		d.Title = title
	}
	if req.Links != nil {
		d.Links = strings.TrimSpace(*req.Links)
	}
	if req.TextContent != nil {
		d.TextContent = *req.TextContent
	}
	if req.Screenshots != nil {
		shots := cleanPaths(req.Screenshots)
		if attachesNew(shots, d.Screenshots) {
			if err := plan.Require(plan.CapScreenshots, scope.Tier); err != nil {
				return nil, err
			}
		}
		d.Screenshots = shots
	}
	if err := s.save(ctx, scope, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SetColor changes the card color. A nil color resets to the default.
func (s *Service) SetColor(ctx context.Context, scope plan.Scope, id string, color *string) (*Dump, error) {
	if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
		return nil, err
	}
	d, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	d.BackgroundColor = color
	if err := s.save(ctx, scope, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a source dump.
func (s *Service) Delete(ctx context.Context, scope plan.Scope, id string) error {
	if err := s.repo.Delete(ctx, scope.OwnerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDumpNotFound
		}
		return fmt.Errorf("deleting source dump: %w", err)
	}
	return nil
}

// Get loads a single source dump.
func (s *Service) Get(ctx context.Context, scope plan.Scope, id string) (*Dump, error) {
	d, err := s.repo.Get(ctx, scope.OwnerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDumpNotFound
		}
		return nil, fmt.Errorf("loading source dump: %w", err)
	}
	return d, nil
}

// List returns the owner's source dumps newest first.
func (s *Service) List(ctx context.Context, scope plan.Scope) ([]Dump, error) {
	dumps, err := s.repo.List(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("listing source dumps: %w", err)
	}
	return dumps, nil
}

func (s *Service) save(ctx context.Context, scope plan.Scope, d *Dump) error {
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, scope.OwnerID, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDumpNotFound
		}
		return fmt.Errorf("updating source dump: %w", err)
	}
	return nil
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// attachesNew reports whether next holds a path missing from prev.
func attachesNew(next, prev []string) bool {
	seen := make(map[string]bool, len(prev))
	for _, p := range prev {
		seen[p] = true
	}
	for _, p := range next {
		if !seen[p] {
			return true
		}
	}
	return false
}
