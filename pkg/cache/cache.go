package cache

import (
	"context"
	"errors"
	"time"
)

// NoExpiration keeps an entry in the cache until explicitly deleted
const NoExpiration time.Duration = -1

// ErrKeyNotFound is returned by Get when the key is absent or expired
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache abstracts the key/value cache backend so consumers can run against
// the in-memory implementation or Redis without code changes
type Cache interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if the key is absent or has expired
	Get(ctx context.Context, key string) (interface{}, error)

	// Set stores value under key with the given expiration
	// Use NoExpiration to keep the entry until deleted
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Delete removes the entry for key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
