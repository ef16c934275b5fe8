// Package cache provides the key-value cache layer used for analytics
// results and hot transaction records. Entries are JSON-encoded structured
// payloads with a per-entry TTL; an expired entry is indistinguishable from
// an absent one.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCache marks a cache transport or storage fault. Callers can use
// errors.Is to tell a fault apart from a plain miss: Get reports a miss as
// (false, nil) and a fault as a non-nil error wrapping ErrCache.
var ErrCache = errors.New("cache error")

// Store is the cache contract consumed by services.
type Store interface {
	// Get decodes the entry at key into dest and reports whether it was
	// present. Expired entries are treated as absent.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set overwrites the entry at key with the JSON encoding of value.
	// A non-positive ttl stores the entry without expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Deleting a missing key is a no-op.
	Delete(ctx context.Context, keys ...string) error
}
