// Package storage defines the key-value contract the activity collection is persisted
// through. Each backend lives in its own subpackage.
package storage

import (
	"context"
	"errors"
)

// KeyValue is a minimal key-value store holding opaque byte values.
type KeyValue interface {
	// Get returns the value for key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored for key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Supported driver names.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Drivers lists every driver name accepted by configuration.
var Drivers = []string{DriverSQLite, DriverRedis, DriverFile, DriverMemory}

// ErrEmptyKey is returned by backends when an empty key is used.
var ErrEmptyKey = errors.New("storage key must not be empty")
