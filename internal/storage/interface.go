package storage

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no record exists under the key.
	ErrNotFound = errors.New("record not found")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value record store. Each value is an opaque encoded
// document; callers own the encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// SQLProvider is implemented by providers backed by a database/sql connection.
type SQLProvider interface {
	Provider
	GetDB() *sql.DB
	// SchemaVersion returns the applied and the latest embedded schema versions.
	SchemaVersion() (current, latest int, err error)
}
