package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	GuestStorageMemory   = "memory"
	GuestStorageDatabase = "database"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("invalid config")

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Guest  GuestConfig  `yaml:"guest"`
	Auth   AuthConfig   `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite. For postgres an empty DSN is read from the OS keyring.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type GuestConfig struct {
	Storage    string `yaml:"storage"`
	QuotaBytes int    `yaml:"quota_bytes"`
	// IdleTimeout expires guest sessions nobody opened for that long. Zero keeps them forever.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
	// Account serves every request when auth is disabled.
	Account string `yaml:"account"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Driver: DriverSQLite,
			DSN:    "everday.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Guest: GuestConfig{
			Storage:     GuestStorageMemory,
			QuotaBytes:  5 * 1024 * 1024,
			IdleTimeout: 24 * time.Hour,
		},
		Auth: AuthConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// An empty path falls back to EVERDAY_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("EVERDAY_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("EVERDAY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := envInt("EVERDAY_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if driver := os.Getenv("EVERDAY_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = strings.ToLower(driver)
	}
	if dsn := os.Getenv("EVERDAY_DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if level := os.Getenv("EVERDAY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if file := os.Getenv("EVERDAY_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if storage := os.Getenv("EVERDAY_GUEST_STORAGE"); storage != "" {
		cfg.Guest.Storage = strings.ToLower(storage)
	}
	if err := envInt("EVERDAY_GUEST_QUOTA_BYTES", &cfg.Guest.QuotaBytes); err != nil {
		return err
	}
	if v := os.Getenv("EVERDAY_GUEST_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid EVERDAY_GUEST_IDLE_TIMEOUT: %w", err)
		}
		cfg.Guest.IdleTimeout = d
	}
	if v := os.Getenv("EVERDAY_AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EVERDAY_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalid, c.Server.Port)
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.DSN == "" {
			return fmt.Errorf("%w: db.dsn is required for sqlite", ErrInvalid)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("%w: db.driver %q", ErrInvalid, c.DB.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Guest.Storage {
	case GuestStorageMemory, GuestStorageDatabase:
	default:
		return fmt.Errorf("%w: guest.storage %q", ErrInvalid, c.Guest.Storage)
	}
	if c.Guest.QuotaBytes < 0 {
		return fmt.Errorf("%w: guest.quota_bytes must not be negative", ErrInvalid)
	}
	if c.Guest.IdleTimeout < 0 {
		return fmt.Errorf("%w: guest.idle_timeout must not be negative", ErrInvalid)
	}
	if !c.Auth.Enabled && c.Auth.Account == "" {
		return fmt.Errorf("%w: auth.account is required when auth is disabled", ErrInvalid)
	}
	return nil
}
