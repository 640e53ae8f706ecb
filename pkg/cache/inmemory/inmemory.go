package inmemory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/classboard/classboard/pkg/cache"
)

// Config holds the in-memory cache settings, durations in seconds
type Config struct {
	DefaultExpiration int
	CleanupInterval   int
}

// Cache is the in-memory cache.Cache implementation backed by go-cache
// Suited for single-instance deployments and tests; entries do not survive
// a restart
type Cache struct {
	store *gocache.Cache
}

// NewCache creates a new in-memory cache from cfg
func NewCache(cfg *Config) (*Cache, error) {
	return &Cache{
		store: gocache.New(
			time.Duration(cfg.DefaultExpiration)*time.Second,
			time.Duration(cfg.CleanupInterval)*time.Second,
		),
	}, nil
}

// Get returns the value stored under key
func (c *Cache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.store.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

// Set stores value under key with the given expiration
func (c *Cache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == cache.NoExpiration {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, value, expiration)
	return nil
}

// Delete removes the entry for key
func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Compile-time interface compliance check
var _ cache.Cache = (*Cache)(nil)
