package guest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/note"
	"github.com/stretchr/testify/require"
)

func TestSessionStatus(t *testing.T) {
	reg := NewRegistry(NewMemoryStorage(0), nil)
	sess := reg.Create(context.Background())

	status := sess.Status()
	require.False(t, status.HasData)
	require.False(t, status.ConfirmLeave)
	require.NotEmpty(t, status.Warning)

	require.NoError(t, sess.Ledger.Write(context.Background(), DomainNotes, func(s *Snapshot) error {
		s.Notes = append(s.Notes, note.Note{ID: "n1"})
		return nil
	}))
	status = sess.Status()
	require.True(t, status.HasData)
	require.True(t, status.ConfirmLeave)
	require.Equal(t, 1, status.Counts[DomainNotes])
}

func TestSessionRunMergeIsOneShot(t *testing.T) {
	sess := &Session{ID: "s"}
	calls := 0

	skipped, err := sess.RunMerge(func() error {
		calls++
		return errors.New("network down")
	})
	require.Error(t, err)
	require.False(t, skipped)
	require.False(t, sess.Merged())

	skipped, err = sess.RunMerge(func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.False(t, skipped)
	require.True(t, sess.Merged())

	skipped, err = sess.RunMerge(func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.True(t, skipped)
	require.Equal(t, 2, calls)
}

func TestRegistryRehydrates(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage(0)
	reg := NewRegistry(storage, nil)
	sess := reg.Create(ctx)
	require.NoError(t, sess.Ledger.Write(ctx, DomainNotes, func(s *Snapshot) error {
		s.Notes = append(s.Notes, note.Note{ID: "n1", Title: "persisted"})
		return nil
	}))

	fresh := NewRegistry(storage, nil)
	reopened, err := fresh.Open(ctx, sess.ID)
	require.NoError(t, err)
	require.NotSame(t, sess, reopened)
	require.Equal(t, sess.Ledger.Snapshot(), reopened.Ledger.Snapshot())
	require.False(t, reopened.Merged())

	same, err := fresh.Open(ctx, sess.ID)
	require.NoError(t, err)
	require.Same(t, reopened, same)
}

func TestRegistryOpenUnknown(t *testing.T) {
	reg := NewRegistry(NewMemoryStorage(0), nil)
	_, err := reg.Open(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Open(context.Background(), "7f8d9fb2-5d4b-4c55-9c73-2cf6a1b0c111")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryDiscard(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage(0)
	reg := NewRegistry(storage, nil)
	sess := reg.Create(ctx)

	require.NoError(t, reg.Discard(ctx, sess.ID))
	_, err := NewRegistry(storage, nil).Open(ctx, sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistrySweepDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage(0)
	reg := NewRegistry(storage, nil)
	clock := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	idle := reg.Create(ctx)
	active := reg.Create(ctx)

	clock = clock.Add(2 * time.Hour)
	_, err := reg.Open(ctx, active.ID)
	require.NoError(t, err)

	clock = clock.Add(30 * time.Minute)
	require.Equal(t, 1, reg.Sweep(ctx, time.Hour))

	_, err = reg.Open(ctx, idle.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, ok, err := storage.Get(ctx, storageKey(idle.ID))
	require.NoError(t, err)
	require.False(t, ok)

	kept, err := reg.Open(ctx, active.ID)
	require.NoError(t, err)
	require.Same(t, active, kept)
	require.Zero(t, reg.Sweep(ctx, time.Hour))
}
