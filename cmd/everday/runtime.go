package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/everday/everday/internal/app"
	"github.com/everday/everday/internal/config"
	"github.com/everday/everday/internal/domain/guest"
	"github.com/everday/everday/internal/logger"
	"github.com/everday/everday/internal/store"
)

// runtime is the opened process state shared by commands.
type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	db     *store.DB
	app    *app.App

	logCloser io.Closer
}

func (r *runtime) Close() {
	if r.db != nil {
		_ = r.db.Close()
	}
	if r.logCloser != nil {
		_ = r.logCloser.Close()
	}
}

func loadConfig(g *Globals) (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// open loads config, builds the logger and opens the migrated store.
// stderr forces log output to stderr so stdout stays free for stdio MCP.
func open(g *Globals, stderr bool) (*runtime, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, closer, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Stderr:     stderr || cfg.Log.File == "",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	rt := &runtime{cfg: cfg, logger: log, logCloser: closer}

	db, err := openStore(&cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.db = db
	if err := db.RunMigrations(); err != nil {
		rt.Close()
		return nil, err
	}

	rt.app = app.New(db, guestStorage(cfg, db), log)
	return rt, nil
}

func openStore(cfg *config.Config) (*store.DB, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		if cfg.DB.DSN != "" {
			if err := store.ValidatePostgresDSN(cfg.DB.DSN); err != nil {
				return nil, fmt.Errorf("db.dsn: %w (store it with `everday dsn set` instead)", err)
			}
		}
		if err := cfg.ResolveDSN(); err != nil {
			return nil, fmt.Errorf("db.dsn: %w", err)
		}
	case config.DriverSQLite:
		if err := ensureDBDir(cfg.DB.DSN); err != nil {
			return nil, fmt.Errorf("failed to prepare database path: %w", err)
		}
	}

	db, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w (dsn %s)", err, store.MaskDSN(cfg.DB.DSN))
	}
	return db, nil
}

func guestStorage(cfg config.Config, db *store.DB) guest.Storage {
	if cfg.Guest.Storage == config.GuestStorageDatabase {
		return store.NewGuestStorage(db, cfg.Guest.QuotaBytes)
	}
	return guest.NewMemoryStorage(cfg.Guest.QuotaBytes)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func serveUntilDone(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
