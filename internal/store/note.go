package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/note"
	"github.com/everday/everday/internal/repository"
)

const noteColumns = `id, user_id, title, content, color, created_at, updated_at`

// NoteRepository implements note.Repository.
type NoteRepository struct {
	db *DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, ownerID string, n *note.Note) error {
	n.OwnerID = ownerID
	query := r.db.Rebind(`INSERT INTO notes (` + noteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		n.ID, ownerID, n.Title, n.Content, n.Color, n.CreatedAt.UTC(), n.UpdatedAt.UTC())
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	var n note.Note
	query := r.db.Rebind(`SELECT ` + noteColumns + ` FROM notes WHERE id = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &n, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &n, nil
}

func (r *NoteRepository) Update(ctx context.Context, ownerID string, n *note.Note) error {
	query := r.db.Rebind(`UPDATE notes SET title = ?, content = ?, color = ?, updated_at = ? WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, n.Title, n.Content, n.Color, n.UpdatedAt.UTC(), n.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return affected(res)
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return affected(res)
}

// List returns notes newest first.
func (r *NoteRepository) List(ctx context.Context, ownerID string) ([]note.Note, error) {
	notes := []note.Note{}
	query := r.db.Rebind(`SELECT ` + noteColumns + ` FROM notes WHERE user_id = ? ORDER BY created_at DESC, id`)
	if err := r.db.SelectContext(ctx, &notes, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM notes WHERE user_id = ?`), ownerID); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

func upsertNotes(ctx context.Context, ext sqlx.ExtContext, ownerID string, notes []note.Note) error {
	query := ext.Rebind(`
		INSERT INTO notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			color = excluded.color,
			updated_at = excluded.updated_at
		WHERE notes.user_id = excluded.user_id
	`)
	for _, n := range notes {
		if _, err := ext.ExecContext(ctx, query,
			n.ID, ownerID, n.Title, n.Content, n.Color, n.CreatedAt.UTC(), n.UpdatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("upserting note %s: %w", n.ID, err)
		}
	}
	return nil
}
