package guest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates an unknown guest session.
var ErrSessionNotFound = errors.New("guest session not found")

// Registry tracks live guest sessions and rehydrates them from storage.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	storage  Storage
	logger   *slog.Logger
	now      func() time.Time
}

// NewRegistry creates a registry over storage.
func NewRegistry(storage Storage, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		storage:  storage,
		logger:   logger,
		now:      time.Now,
	}
}

func storageKey(id string) string {
	return StorageKey + ":" + id
}

// Create starts a new guest session with an empty ledger.
func (r *Registry) Create(ctx context.Context) *Session {
	id := uuid.NewString()
	sess := &Session{
		ID:        id,
		Ledger:    NewLedger(r.storage, storageKey(id), r.logger),
		CreatedAt: r.now().UTC(),
	}
	if err := r.storage.Set(ctx, storageKey(id), "{}"); err != nil {
		r.logger.Warn("guest session not persisted", "session_id", id, "error", err)
	}

	r.mu.Lock()
	r.sessions[id] = sess
	r.lastSeen[id] = r.now()
	r.mu.Unlock()
	r.logger.Debug("guest session created", "session_id", id)
	return sess
}

// Open returns a live session or rehydrates it from storage.
func (r *Registry) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		r.lastSeen[id] = r.now()
		return sess, nil
	}

	ledger, found, err := Load(ctx, r.storage, storageKey(id), r.logger)
	if err != nil {
		return nil, fmt.Errorf("opening guest session: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	sess := &Session{ID: id, Ledger: ledger, CreatedAt: r.now().UTC()}
	r.sessions[id] = sess
	r.lastSeen[id] = r.now()
	return sess, nil
}

// Discard forgets a session and its stored ledger.
func (r *Registry) Discard(ctx context.Context, id string) error {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	delete(r.lastSeen, id)
	r.mu.Unlock()

	if ok {
		return sess.Ledger.Clear(ctx)
	}
	if err := r.storage.Remove(ctx, storageKey(id)); err != nil {
		return fmt.Errorf("removing guest storage: %w", err)
	}
	return nil
}

// Expirer is implemented by storages that can drop ledgers nobody opened
// since before a cutoff, including ledgers of sessions this process never saw.
type Expirer interface {
	RemoveIdle(ctx context.Context, prefix string, before time.Time, keep []string) (int, error)
}

// Sweep discards sessions not opened within idle. A guest who stops using a
// session is treated like a closed tab.
func (r *Registry) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var expired []*Session
	keep := make([]string, 0, len(r.sessions))
	for id, sess := range r.sessions {
		if r.lastSeen[id].Before(cutoff) {
			expired = append(expired, sess)
			delete(r.sessions, id)
			delete(r.lastSeen, id)
			continue
		}
		keep = append(keep, storageKey(id))
	}
	r.mu.Unlock()

	removed := 0
	for _, sess := range expired {
		if err := sess.Ledger.Clear(ctx); err != nil {
			r.logger.Warn("expired guest session not cleared", "session_id", sess.ID, "error", err)
			continue
		}
		removed++
	}
	if exp, ok := r.storage.(Expirer); ok {
		n, err := exp.RemoveIdle(ctx, StorageKey+":", cutoff, keep)
		if err != nil {
			r.logger.Warn("guest storage sweep failed", "error", err)
		}
		removed += n
	}
	if removed > 0 {
		r.logger.Info("guest sessions expired", "count", removed, "idle", idle)
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx, idle)
		}
	}
}
