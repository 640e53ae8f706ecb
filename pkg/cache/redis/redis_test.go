package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard/pkg/cache"
)

func setupRedisCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)

	c, err := NewCache(context.Background(), &Config{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_SetGet(t *testing.T) {
	c := setupRedisCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "classrooms:all", `[{"name":"5VR","capacity":35}]`, cache.NoExpiration)
	require.NoError(t, err)

	val, err := c.Get(ctx, "classrooms:all")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"5VR","capacity":35}]`, val)
}

func TestRedisCache_GetMissing(t *testing.T) {
	c := setupRedisCache(t)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestRedisCache_Delete(t *testing.T) {
	c := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedisCache_NewFailsWhenUnreachable(t *testing.T) {
	_, err := NewCache(context.Background(), &Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
