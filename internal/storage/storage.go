// Package storage defines the key/value substrate the agenda store persists to.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// ErrQuotaExceeded is returned by Save when the backend has no room for the value.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Storage is a narrow get/set interface over a persistent key/value store.
// Backends never interpret the bytes they hold.
type Storage interface {
	// Load returns the value stored under key.
	// Returns ErrNotFound if the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	// The write is all-or-nothing: on error the previous value stays readable.
	Save(ctx context.Context, key string, data []byte) error
}
