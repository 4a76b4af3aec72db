package store

import (
	"context"
	"fmt"
	"time"

	"github.com/everday/everday/internal/domain/activity"
)

// ActivityRepository implements activity.Repository.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, accountID string, entry *activity.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	query := r.db.Rebind(`
		INSERT INTO activity_log (account_id, activity_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	if err := r.db.QueryRowxContext(ctx, query,
		accountID, entry.Type, entry.Summary, entry.Details, createdAt,
	).Scan(&id); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	entry.ID = id
	entry.AccountID = accountID
	entry.CreatedAt = createdAt
	return nil
}

// List returns activity entries newest first.
func (r *ActivityRepository) List(ctx context.Context, accountID string, opts activity.ListOptions) ([]activity.Entry, error) {
	query := `
		SELECT id, account_id, activity_type, summary, details, created_at
		FROM activity_log
		WHERE account_id = ?
	`
	args := []interface{}{accountID}

	if opts.Type != nil {
		query += " AND activity_type = ?"
		args = append(args, *opts.Type)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	entries := []activity.Entry{}
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}
