package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Ledger holds a guest's records across every domain. Memory is authoritative;
// every write mirrors the whole ledger to storage and a failed mirror is only
// logged.
type Ledger struct {
	mu      sync.RWMutex
	data    Snapshot
	storage Storage
	key     string
	logger  *slog.Logger
}

// NewLedger creates an empty ledger persisted under key.
func NewLedger(storage Storage, key string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Ledger{storage: storage, key: key, logger: logger}
	l.data.normalize()
	return l
}

// Load rehydrates a ledger from storage. found is false when nothing was stored.
// Unreadable content yields an empty ledger.
func Load(ctx context.Context, storage Storage, key string, logger *slog.Logger) (l *Ledger, found bool, err error) {
	l = NewLedger(storage, key, logger)
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("reading guest storage: %w", err)
	}
	if !ok {
		return l, false, nil
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		l.logger.Warn("discarding unreadable guest ledger", "key", key, "error", err)
		return l, true, nil
	}
	snap.normalize()
	l.data = snap
	return l, true, nil
}

// Read calls fn with the current content. fn must not retain or modify it.
func (l *Ledger) Read(fn func(s *Snapshot)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(&l.data)
}

// Write applies fn to a copy of the content and commits it unless fn fails.
// The committed ledger is then mirrored to storage.
func (l *Ledger) Write(ctx context.Context, domain Domain, fn func(s *Snapshot) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.normalize()
	l.data = next
	l.persist(ctx, domain)
	return nil
}

// Snapshot returns a deep copy of the content.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.Clone()
}

// IsEmpty reports whether the ledger holds no records.
func (l *Ledger) IsEmpty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.IsEmpty()
}

// Counts returns the number of records per domain.
func (l *Ledger) Counts() map[Domain]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data.Counts()
}

// Clear empties the ledger and removes its persisted mirror.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = Snapshot{}
	l.data.normalize()
	if err := l.storage.Remove(ctx, l.key); err != nil {
		return fmt.Errorf("removing guest storage: %w", err)
	}
	return nil
}

// Drain hands a snapshot to fn while holding off writes and clears the ledger
// only if fn succeeds. A failed removal of the persisted mirror is logged.
func (l *Ledger) Drain(ctx context.Context, fn func(s Snapshot) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := fn(l.data.Clone()); err != nil {
		return err
	}
	l.data = Snapshot{}
	l.data.normalize()
	if err := l.storage.Remove(ctx, l.key); err != nil {
		l.logger.Warn("guest storage not cleared after drain", "key", l.key, "error", err)
	}
	return nil
}

// persist must be called with mu held.
func (l *Ledger) persist(ctx context.Context, domain Domain) {
	raw, err := json.Marshal(&l.data)
	if err != nil {
		l.logger.Warn("guest ledger not serialized", "domain", domain, "error", err)
		return
	}
	if err := l.storage.Set(ctx, l.key, string(raw)); err != nil {
		l.logger.Warn("guest ledger not persisted", "domain", domain, "bytes", len(raw), "error", err)
	}
}
