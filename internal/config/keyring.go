package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "everday"
	keyringUser    = "db-dsn"
)

var (
	// ErrNoKeyringDSN is returned when no DSN is stored in the keyring.
	ErrNoKeyringDSN = errors.New("no database DSN in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// KeyringDSN reads the stored database DSN.
func KeyringDSN() (string, error) {
	dsn, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoKeyringDSN
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return dsn, nil
}

// SetKeyringDSN stores the database DSN.
func SetKeyringDSN(dsn string) error {
	if dsn == "" {
		return errors.New("dsn cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, dsn); err != nil {
		return fmt.Errorf("failed to store dsn in keyring: %w", err)
	}
	return nil
}

// ClearKeyringDSN removes the stored database DSN.
func ClearKeyringDSN() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoKeyringDSN
		}
		return fmt.Errorf("failed to delete dsn from keyring: %w", err)
	}
	return nil
}

// ResolveDSN fills an empty postgres DSN from the keyring.
func (c *Config) ResolveDSN() error {
	if c.DB.Driver != DriverPostgres || c.DB.DSN != "" {
		return nil
	}
	dsn, err := KeyringDSN()
	if err != nil {
		return err
	}
	c.DB.DSN = dsn
	return nil
}
