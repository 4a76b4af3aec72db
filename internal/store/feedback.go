package store

import (
	"context"
	"fmt"

	"github.com/everday/everday/internal/domain/feedback"
	"github.com/everday/everday/internal/repository"
)

// FeedbackRepository implements feedback.Repository.
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, accountID string, f *feedback.Feedback) error {
	f.OwnerID = accountID
	query := r.db.Rebind(`INSERT INTO feedback (id, user_id, message, created_at) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, f.ID, accountID, f.Message, f.CreatedAt.UTC())
	switch {
	case isUniqueViolation(err):
		return repository.ErrConflict
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	case err != nil:
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}
