package store

import (
	"context"
	"fmt"
	"time"

	"github.com/everday/everday/internal/domain/dashboard"
	"github.com/everday/everday/internal/domain/habit"
)

// DashboardRepository implements dashboard.Counter.
type DashboardRepository struct {
	db *DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountCreated counts rows by created_at. Habit logs carry no timestamp and
// are counted by log_date.
func (r *DashboardRepository) CountCreated(ctx context.Context, ownerID string, from, to time.Time) (dashboard.Counts, error) {
	var c dashboard.Counts
	created := []struct {
		table string
		dst   *int
	}{
		{"todos", &c.Todos},
		{"pomodoro_sessions", &c.PomodoroSessions},
		{"journal_entries", &c.JournalEntries},
		{"notes", &c.Notes},
	}
	for _, q := range created {
		query := r.db.Rebind(`SELECT COUNT(*) FROM ` + q.table + ` WHERE user_id = ? AND created_at >= ? AND created_at <= ?`)
		if err := r.db.GetContext(ctx, q.dst, query, ownerID, from.UTC(), to.UTC()); err != nil {
			return dashboard.Counts{}, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}

	query := r.db.Rebind(`SELECT COUNT(*) FROM habit_logs WHERE user_id = ? AND log_date >= ? AND log_date <= ?`)
	if err := r.db.GetContext(ctx, &c.HabitLogs, query,
		ownerID, from.Format(habit.DateLayout), to.Format(habit.DateLayout),
	); err != nil {
		return dashboard.Counts{}, fmt.Errorf("failed to count habit_logs: %w", err)
	}
	return c, nil
}
