// Package logger builds the process *slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level string
	// File adds a rotating log file when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Stderr also writes to standard error. Stdio MCP keeps stdout clean.
	Stderr bool
}

// New returns a logger backed by a charm handler. The returned closer
// releases the log file and is never nil.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	if cfg.Stderr || cfg.File == "" {
		writers = append(writers, os.Stderr)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, err
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, file)
		closer = file
	}

	handler := log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		ReportTimestamp: true,
		ReportCaller:    cfg.Level == "debug",
		Level:           ParseLevel(cfg.Level),
		Prefix:          "everday",
	})
	return slog.New(handler), closer, nil
}

// ParseLevel maps a config level to a charm level. Unknown levels are info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
