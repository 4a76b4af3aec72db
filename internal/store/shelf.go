package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/shelf"
	"github.com/everday/everday/internal/repository"
)

const shelfColumns = `id, user_id, shelf, title, author, actor_actress, director, notes, status, background_color, created_at, updated_at`

// ShelfRepository implements shelf.Repository over one table for both shelves.
type ShelfRepository struct {
	db *DB
}

// NewShelfRepository creates a new ShelfRepository
func NewShelfRepository(db *DB) *ShelfRepository {
	return &ShelfRepository{db: db}
}

func (r *ShelfRepository) Create(ctx context.Context, ownerID string, item *shelf.Item) error {
	item.OwnerID = ownerID
	query := r.db.Rebind(`INSERT INTO shelf_items (` + shelfColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, shelfArgs(ownerID, item.Shelf, *item)...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create shelf item: %w", err)
	}
	return nil
}

func (r *ShelfRepository) Get(ctx context.Context, ownerID string, kind shelf.Kind, id string) (*shelf.Item, error) {
	var item shelf.Item
	query := r.db.Rebind(`SELECT ` + shelfColumns + ` FROM shelf_items WHERE id = ? AND user_id = ? AND shelf = ?`)
	if err := r.db.GetContext(ctx, &item, query, id, ownerID, kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shelf item: %w", err)
	}
	return &item, nil
}

func (r *ShelfRepository) Update(ctx context.Context, ownerID string, item *shelf.Item) error {
	query := r.db.Rebind(`
		UPDATE shelf_items SET
			title = ?, author = ?, actor_actress = ?, director = ?, notes = ?,
			status = ?, background_color = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND shelf = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Author, item.ActorActress, item.Director, item.Notes,
		item.Status, item.BackgroundColor, item.UpdatedAt.UTC(),
		item.ID, ownerID, item.Shelf,
	)
	if err != nil {
		return fmt.Errorf("failed to update shelf item: %w", err)
	}
	return affected(res)
}

func (r *ShelfRepository) Delete(ctx context.Context, ownerID string, kind shelf.Kind, id string) error {
	query := r.db.Rebind(`DELETE FROM shelf_items WHERE id = ? AND user_id = ? AND shelf = ?`)
	res, err := r.db.ExecContext(ctx, query, id, ownerID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete shelf item: %w", err)
	}
	return affected(res)
}

// List returns a shelf oldest first.
func (r *ShelfRepository) List(ctx context.Context, ownerID string, kind shelf.Kind) ([]shelf.Item, error) {
	items := []shelf.Item{}
	query := r.db.Rebind(`SELECT ` + shelfColumns + ` FROM shelf_items WHERE user_id = ? AND shelf = ? ORDER BY created_at ASC, id`)
	if err := r.db.SelectContext(ctx, &items, query, ownerID, kind); err != nil {
		return nil, fmt.Errorf("failed to list shelf items: %w", err)
	}
	return items, nil
}

// Count counts one column of a shelf. An empty status counts the whole shelf.
func (r *ShelfRepository) Count(ctx context.Context, ownerID string, kind shelf.Kind, status shelf.Status) (int, error) {
	query := `SELECT COUNT(*) FROM shelf_items WHERE user_id = ? AND shelf = ?`
	args := []interface{}{ownerID, kind}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count shelf items: %w", err)
	}
	return n, nil
}

func shelfArgs(ownerID string, kind shelf.Kind, it shelf.Item) []interface{} {
	return []interface{}{
		it.ID, ownerID, kind, it.Title, it.Author, it.ActorActress, it.Director, it.Notes,
		it.Status, it.BackgroundColor, it.CreatedAt.UTC(), it.UpdatedAt.UTC(),
	}
}

func upsertShelfItems(ctx context.Context, ext sqlx.ExtContext, ownerID string, kind shelf.Kind, items []shelf.Item) error {
	query := ext.Rebind(`
		INSERT INTO shelf_items (` + shelfColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			actor_actress = excluded.actor_actress,
			director = excluded.director,
			notes = excluded.notes,
			status = excluded.status,
			background_color = excluded.background_color,
			updated_at = excluded.updated_at
		WHERE shelf_items.user_id = excluded.user_id
	`)
	for _, it := range items {
		if _, err := ext.ExecContext(ctx, query, shelfArgs(ownerID, kind, it)...); err != nil {
			return fmt.Errorf("upserting %s item %s: %w", kind, it.ID, err)
		}
	}
	return nil
}
