package habit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Raise is a best streak increase observed while building a board.
type Raise struct {
	HabitID string `json:"habit_id"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// WriteBack is the asynchronous persistence of raised best streaks.
type WriteBack struct {
	Raised []Raise
	done   chan struct{}
	err    error
}

func startWriteBack(ctx context.Context, raised []Raise, write func(context.Context, Raise) error) *WriteBack {
	w := &WriteBack{Raised: raised, done: make(chan struct{})}
	if len(raised) == 0 {
		close(w.done)
		return w
	}
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	for _, r := range raised {
		g.Go(func() error { return write(gctx, r) })
	}
	go func() {
		w.err = g.Wait()
		close(w.done)
	}()
	return w
}

// Wait blocks until every write finished or ctx is done and returns the first write error.
func (w *WriteBack) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Observe waits in the background for at most timeout and logs the outcome.
// The returned channel is closed once the outcome has been logged.
func (w *WriteBack) Observe(logger *slog.Logger, timeout time.Duration) <-chan struct{} {
	logged := make(chan struct{})
	if len(w.Raised) == 0 {
		close(logged)
		return logged
	}
	go func() {
		defer close(logged)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := w.Wait(ctx)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("best streak write-back still running", "raised", len(w.Raised), "timeout", timeout)
		case err != nil:
			logger.Error("best streak write-back failed", "raised", len(w.Raised), "error", err)
		default:
			logger.Debug("best streak write-back done", "raised", len(w.Raised))
		}
	}()
	return logged
}
