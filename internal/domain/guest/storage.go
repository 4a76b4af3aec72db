package guest

import (
	"context"
	"errors"
	"sync"
)

// StorageKey is the storage key prefix of persisted ledgers.
const StorageKey = "everday_guest_data"

// ErrQuotaExceeded indicates the storage refused a value for its size.
var ErrQuotaExceeded = errors.New("guest storage quota exceeded")

// Storage is a string key-value store scoped to guest sessions.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
}

// NewMemoryStorage creates a memory storage. A positive quota caps the byte
// size of a single value.
func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string), quota: quota}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	if m.quota > 0 && len(value) > m.quota {
		return ErrQuotaExceeded
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
