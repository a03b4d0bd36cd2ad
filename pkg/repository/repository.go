package repository

import (
	"context"
	"errors"
)

// Storage interfaces. These are the public contracts the data store depends
// on; concrete backends live under internal/repository.

// ErrUnavailable is returned by backends that have no storage context to
// talk to (closed connection, no browser window).
var ErrUnavailable = errors.New("storage unavailable")

// KV is a flat string key-value store scoped to a single profile.
// Get reports ok=false for a missing key; that is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Profiles hands out isolated KV namespaces, one per browser profile.
type Profiles interface {
	Profile(id string) KV
}

// Dropper is implemented by backends that can erase a whole profile at once.
// DropProfile reports how many keys were removed.
type Dropper interface {
	DropProfile(ctx context.Context, id string) (int, error)
}
