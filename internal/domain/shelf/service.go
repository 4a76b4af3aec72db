package shelf

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

// Service handles reading and watch list logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new shelf service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Add places a new item in a column if the column is under its ceiling.
// An empty status selects the shelf's first column.
func (s *Service) Add(ctx context.Context, scope plan.Scope, shelf Kind, status Status, fields Fields, color *string) (*Item, error) {
	if _, ok := ParseKind(string(shelf)); !ok {
		return nil, fmt.Errorf("%w: unknown shelf %q", ErrInvalidInput, shelf)
	}
	if status == "" {
		status = shelf.Columns()[0]
	}
	if !shelf.Has(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	item := &Item{Shelf: shelf, Status: status}
	apply(item, fields)
	if isBlank(item) {
		return nil, fmt.Errorf("%w: at least one field is required", ErrInvalidInput)
	}
	if color != nil {
		if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
			return nil, err
		}
		item.BackgroundColor = color
	}
	if err := s.checkCeiling(ctx, scope, shelf, "", status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.OwnerID = scope.OwnerID
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.repo.Create(ctx, scope.OwnerID, item); err != nil {
		return nil, fmt.Errorf("creating shelf item: %w", err)
	}
	return item, nil
}

// Edit updates the text fields of an item.
func (s *Service) Edit(ctx context.Context, scope plan.Scope, shelf Kind, id string, fields Fields) (*Item, error) {
	item, err := s.get(ctx, scope, shelf, id)
	if err != nil {
		return nil, err
	}
	apply(item, fields)
	if isBlank(item) {
		return nil, fmt.Errorf("%w: at least one field is required", ErrInvalidInput)
	}
	if err := s.save(ctx, scope, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Move puts an item in another column. Only the destination's ceiling is
// checked and moving to the current column is a no-op.
func (s *Service) Move(ctx context.Context, scope plan.Scope, shelf Kind, id string, to Status) (*Item, error) {
	if !shelf.Has(to) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	item, err := s.get(ctx, scope, shelf, id)
	if err != nil {
		return nil, err
	}
	if item.Status == to {
		return item, nil
	}
	if err := s.checkCeiling(ctx, scope, shelf, item.Status, to); err != nil {
		return nil, err
	}
	item.Status = to
	if err := s.save(ctx, scope, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetColor changes the card color. A nil color resets to the default.
func (s *Service) SetColor(ctx context.Context, scope plan.Scope, shelf Kind, id string, color *string) (*Item, error) {
	if err := plan.Require(plan.CapCardColor, scope.Tier); err != nil {
		return nil, err
	}
	item, err := s.get(ctx, scope, shelf, id)
	if err != nil {
		return nil, err
	}
	item.BackgroundColor = color
	if err := s.save(ctx, scope, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, scope plan.Scope, shelf Kind, id string) error {
	if err := s.repo.Delete(ctx, scope.OwnerID, shelf, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("deleting shelf item: %w", err)
	}
	return nil
}

// Board groups the shelf's items by column.
func (s *Service) Board(ctx context.Context, scope plan.Scope, shelf Kind) ([]Column, error) {
	if _, ok := ParseKind(string(shelf)); !ok {
		return nil, fmt.Errorf("%w: unknown shelf %q", ErrInvalidInput, shelf)
	}
	items, err := s.repo.List(ctx, scope.OwnerID, shelf)
	if err != nil {
		return nil, fmt.Errorf("listing shelf items: %w", err)
	}
	byStatus := make(map[Status][]Item)
	for _, it := range items {
		byStatus[it.Status] = append(byStatus[it.Status], it)
	}
	out := make([]Column, 0, len(shelf.Columns()))
	for _, st := range shelf.Columns() {
		col := byStatus[st]
		if col == nil {
			col = []Item{}
		}
		dec := plan.Check(shelf.Domain(), plan.Bucket(st), len(col), scope.Tier)
		out = append(out, Column{Status: st, Items: col, Ceiling: dec.Ceiling, LimitReached: !dec.Allowed})
	}
	return out, nil
}

func (s *Service) checkCeiling(ctx context.Context, scope plan.Scope, shelf Kind, from, to Status) error {
	count, err := s.repo.Count(ctx, scope.OwnerID, shelf, to)
	if err != nil {
		return fmt.Errorf("counting shelf items: %w", err)
	}
	dec := plan.CheckMove(shelf.Domain(), plan.Bucket(from), plan.Bucket(to), count, scope.Tier)
	if !dec.Allowed {
		s.logger.Info("shelf change denied by plan", "owner_id", scope.OwnerID, "shelf", shelf, "status", to, "count", count)
	}
	return dec.Err()
}

func (s *Service) get(ctx context.Context, scope plan.Scope, shelf Kind, id string) (*Item, error) {
	item, err := s.repo.Get(ctx, scope.OwnerID, shelf, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("loading shelf item: %w", err)
	}
	item.Shelf = shelf
	return item, nil
}

func (s *Service) save(ctx context.Context, scope plan.Scope, item *Item) error {
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, scope.OwnerID, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("updating shelf item: %w", err)
	}
	return nil
}

func apply(item *Item, f Fields) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&item.Title, f.Title)
	set(&item.Notes, f.Notes)
	if item.Shelf == KindReading {
		set(&item.Author, f.Author)
		return
	}
	set(&item.ActorActress, f.ActorActress)
	set(&item.Director, f.Director)
}

func isBlank(item *Item) bool {
	return item.Title == "" && item.Author == "" && item.ActorActress == "" && item.Director == "" && item.Notes == ""
}
