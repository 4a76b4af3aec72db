package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/everday/everday/internal/domain/pomodoro"
	"github.com/everday/everday/internal/repository"
)

const (
	pomodoroSettingsColumns = `user_id, pomodoro_minutes, short_break_minutes, long_break_minutes, long_break_after_sessions, play_sound, updated_at`
	pomodoroSessionColumns  = `id, user_id, mode, started_at, ended_at, duration_seconds, completed, created_at`
)

// PomodoroRepository implements pomodoro.Repository.
type PomodoroRepository struct {
	db *DB
}

// NewPomodoroRepository creates a new PomodoroRepository
func NewPomodoroRepository(db *DB) *PomodoroRepository {
	return &PomodoroRepository{db: db}
}

func (r *PomodoroRepository) GetSettings(ctx context.Context, ownerID string) (*pomodoro.Settings, error) {
	var st pomodoro.Settings
	query := r.db.Rebind(`SELECT ` + pomodoroSettingsColumns + ` FROM pomodoro_settings WHERE user_id = ?`)
	if err := r.db.GetContext(ctx, &st, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pomodoro settings: %w", err)
	}
	return &st, nil
}

// UpsertSettings writes the one settings row of an owner.
func (r *PomodoroRepository) UpsertSettings(ctx context.Context, ownerID string, st *pomodoro.Settings) error {
	st.OwnerID = ownerID
	query := r.db.Rebind(`
		INSERT INTO pomodoro_settings (` + pomodoroSettingsColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			pomodoro_minutes = excluded.pomodoro_minutes,
			short_break_minutes = excluded.short_break_minutes,
			long_break_minutes = excluded.long_break_minutes,
			long_break_after_sessions = excluded.long_break_after_sessions,
			play_sound = excluded.play_sound,
			updated_at = excluded.updated_at
	`)
	if _, err := r.db.ExecContext(ctx, query,
		ownerID, st.PomodoroMinutes, st.ShortBreakMinutes, st.LongBreakMinutes, st.LongBreakAfterSessions,
		st.PlaySound, st.UpdatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to save pomodoro settings: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) CreateSession(ctx context.Context, ownerID string, sess *pomodoro.Session) error {
	sess.OwnerID = ownerID
	query := r.db.Rebind(`INSERT INTO pomodoro_sessions (` + pomodoroSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		sess.ID, ownerID, sess.Mode, sess.StartedAt.UTC(), sess.EndedAt.UTC(), sess.DurationSeconds, sess.Completed,
		sess.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create pomodoro session: %w", err)
	}
	return nil
}

// ListSessions returns sessions ordered by ended_at. An empty mode lists every mode.
func (r *PomodoroRepository) ListSessions(ctx context.Context, ownerID string, mode pomodoro.Mode) ([]pomodoro.Session, error) {
	query := `SELECT ` + pomodoroSessionColumns + ` FROM pomodoro_sessions WHERE user_id = ?`
	args := []interface{}{ownerID}
	if mode != "" {
		query += " AND mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY ended_at ASC, id"

	sessions := []pomodoro.Session{}
	if err := r.db.SelectContext(ctx, &sessions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list pomodoro sessions: %w", err)
	}
	return sessions, nil
}
