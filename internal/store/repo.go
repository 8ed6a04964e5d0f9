package store

import (
	"context"
	"time"
)

// Entry is one stored key with its metadata.
type Entry struct {
	Key       string
	Value     string
	Rev       int64
	UpdatedAt time.Time
}

// KVRepo is durable string storage keyed by name. Each Put replaces the
// whole value atomically.
type KVRepo interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// List returns all entries ordered by key.
	List(ctx context.Context) ([]Entry, error)
}
