package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/todo"
	"github.com/everday/everday/internal/repository"
)

const todoColumns = `id, user_id, type, title, is_completed, background_color, created_at, updated_at`

// TodoRepository implements todo.Repository.
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, ownerID string, t *todo.Todo) error {
	t.OwnerID = ownerID
	query := r.db.Rebind(`INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		t.ID, ownerID, t.Kind, t.Title, t.IsCompleted, t.BackgroundColor, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*todo.Todo, error) {
	var t todo.Todo
	query := r.db.Rebind(`SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &t, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &t, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID string, t *todo.Todo) error {
	query := r.db.Rebind(`
		UPDATE todos SET type = ?, title = ?, is_completed = ?, background_color = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		t.Kind, t.Title, t.IsCompleted, t.BackgroundColor, t.UpdatedAt.UTC(), t.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return affected(res)
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM todos WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return affected(res)
}

// List returns todos oldest first. An empty kind lists every list.
func (r *TodoRepository) List(ctx context.Context, ownerID string, kind todo.Kind) ([]todo.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`
	args := []interface{}{ownerID}
	if kind != "" {
		query += " AND type = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at ASC, id"

	todos := []todo.Todo{}
	if err := r.db.SelectContext(ctx, &todos, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) Count(ctx context.Context, ownerID string, kind todo.Kind) (int, error) {
	query := `SELECT COUNT(*) FROM todos WHERE user_id = ?`
	args := []interface{}{ownerID}
	if kind != "" {
		query += " AND type = ?"
		args = append(args, kind)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return n, nil
}

func upsertTodos(ctx context.Context, ext sqlx.ExtContext, ownerID string, todos []todo.Todo) error {
	query := ext.Rebind(`
		INSERT INTO todos (` + todoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			is_completed = excluded.is_completed,
			background_color = excluded.background_color,
			updated_at = excluded.updated_at
		WHERE todos.user_id = excluded.user_id
	`)
	for _, t := range todos {
		if _, err := ext.ExecContext(ctx, query,
			t.ID, ownerID, t.Kind, t.Title, t.IsCompleted, t.BackgroundColor, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("upserting todo %s: %w", t.ID, err)
		}
	}
	return nil
}
