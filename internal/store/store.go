// Package store defines the durable key-value substrate the local store
// persists its collections to. Backends live in sub-packages.
package store

import "context"

// Fixed keys, one per persisted collection.
const (
	KeyFavorites     = "cocktail_favorites"
	KeySearchHistory = "cocktail_search_history"
)

// KV is a durable string-keyed store. Each value is one JSON-encoded
// collection.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
