package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/everday/everday/internal/domain/habit"
	"github.com/everday/everday/internal/repository"
)

const habitColumns = `id, user_id, name, icon_key, best_streak, is_deleted, created_at, updated_at, deleted_at`

// HabitRepository implements habit.Repository.
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// Create inserts a new habit
func (r *HabitRepository) Create(ctx context.Context, ownerID string, h *habit.Habit) error {
	h.OwnerID = ownerID
	query := r.db.Rebind(`
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		h.ID, ownerID, h.Name, h.IconKey, h.BestStreak, h.IsDeleted,
		h.CreatedAt.UTC(), h.UpdatedAt.UTC(), utcPtr(h.DeletedAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

// Get retrieves a habit by ID
func (r *HabitRepository) Get(ctx context.Context, ownerID, id string) (*habit.Habit, error) {
	var h habit.Habit
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &h, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return &h, nil
}

// Update writes every mutable column. best_streak never decreases.
func (r *HabitRepository) Update(ctx context.Context, ownerID string, h *habit.Habit) error {
	query := r.db.Rebind(`
		UPDATE habits SET
			name = ?, icon_key = ?, is_deleted = ?, updated_at = ?, deleted_at = ?,
			best_streak = CASE WHEN best_streak > ? THEN best_streak ELSE ? END
		WHERE id = ? AND user_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.IconKey, h.IsDeleted, h.UpdatedAt.UTC(), utcPtr(h.DeletedAt),
		h.BestStreak, h.BestStreak,
		h.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return affected(res)
}

// Destroy removes a habit and its day logs.
func (r *HabitRepository) Destroy(ctx context.Context, ownerID, id string) error {
	return r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habits WHERE id = ? AND user_id = ?`), id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		if err := affected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habit_logs WHERE habit_id = ? AND user_id = ?`), id, ownerID); err != nil {
			return fmt.Errorf("failed to delete habit logs: %w", err)
		}
		return nil
	})
}

// List returns every habit of the owner, deleted ones included, oldest first.
func (r *HabitRepository) List(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	habits := []habit.Habit{}
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? ORDER BY created_at ASC, id ASC`)
	if err := r.db.SelectContext(ctx, &habits, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

// CountActive counts habits that are not soft-deleted.
func (r *HabitRepository) CountActive(ctx context.Context, ownerID string) (int, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM habits WHERE user_id = ? AND is_deleted = ?`)
	if err := r.db.GetContext(ctx, &n, query, ownerID, false); err != nil {
		return 0, fmt.Errorf("failed to count habits: %w", err)
	}
	return n, nil
}

// RaiseBestStreak stores best when it exceeds the stored value.
func (r *HabitRepository) RaiseBestStreak(ctx context.Context, ownerID, id string, best int) (bool, error) {
	query := r.db.Rebind(`
		UPDATE habits SET best_streak = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND best_streak < ?
	`)
	res, err := r.db.ExecContext(ctx, query, best, time.Now().UTC(), id, ownerID, best)
	if err != nil {
		return false, fmt.Errorf("failed to raise best streak: %w", err)
	}
	if err := affected(res); err == nil {
		return true, nil
	}
	if _, err := r.Get(ctx, ownerID, id); err != nil {
		return false, err
	}
	return false, nil
}

// HabitLogRepository implements habit.LogRepository.
type HabitLogRepository struct {
	db *DB
}

// NewHabitLogRepository creates a new HabitLogRepository
func NewHabitLogRepository(db *DB) *HabitLogRepository {
	return &HabitLogRepository{db: db}
}

// Get retrieves the log of one habit day.
func (r *HabitLogRepository) Get(ctx context.Context, ownerID, habitID, date string) (*habit.Log, error) {
	var l habit.Log
	query := r.db.Rebind(`SELECT habit_id, log_date, status FROM habit_logs WHERE habit_id = ? AND log_date = ? AND user_id = ?`)
	if err := r.db.GetContext(ctx, &l, query, habitID, date, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}
	return &l, nil
}

// Upsert sets the status of one habit day.
func (r *HabitLogRepository) Upsert(ctx context.Context, ownerID string, log habit.Log) error {
	return upsertHabitLogs(ctx, r.db, ownerID, []habit.Log{log})
}

// List returns every log of the owner ordered by habit and date.
func (r *HabitLogRepository) List(ctx context.Context, ownerID string) ([]habit.Log, error) {
	logs := []habit.Log{}
	query := r.db.Rebind(`SELECT habit_id, log_date, status FROM habit_logs WHERE user_id = ? ORDER BY habit_id, log_date`)
	if err := r.db.SelectContext(ctx, &logs, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}
	return logs, nil
}

func upsertHabits(ctx context.Context, ext sqlx.ExtContext, ownerID string, habits []habit.Habit) error {
	query := ext.Rebind(`
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			icon_key = excluded.icon_key,
			is_deleted = excluded.is_deleted,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at,
			best_streak = CASE WHEN excluded.best_streak > habits.best_streak
				THEN excluded.best_streak ELSE habits.best_streak END
		WHERE habits.user_id = excluded.user_id
	`)
	for _, h := range habits {
		if _, err := ext.ExecContext(ctx, query,
			h.ID, ownerID, h.Name, h.IconKey, h.BestStreak, h.IsDeleted,
			h.CreatedAt.UTC(), h.UpdatedAt.UTC(), utcPtr(h.DeletedAt),
		); err != nil {
			return fmt.Errorf("upserting habit %s: %w", h.ID, err)
		}
	}
	return nil
}

func upsertHabitLogs(ctx context.Context, ext sqlx.ExtContext, ownerID string, logs []habit.Log) error {
	query := ext.Rebind(`
		INSERT INTO habit_logs (habit_id, user_id, log_date, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET status = excluded.status
		WHERE habit_logs.user_id = excluded.user_id
	`)
	for _, l := range logs {
		if _, err := ext.ExecContext(ctx, query, l.HabitID, ownerID, l.Date, l.Status); err != nil {
			return fmt.Errorf("upserting habit log %s/%s: %w", l.HabitID, l.Date, err)
		}
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
