package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard/pkg/cache"
	"github.com/classboard/classboard/pkg/cache/inmemory"
	"github.com/classboard/classboard/pkg/types"
)

var seedRooms = []types.Classroom{
	{Name: "5VR", Capacity: 35},
	{Name: "2GK", Capacity: 38},
}

func newTestCatalog(t *testing.T, cfg *Config, c cache.Cache) *Catalog {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "catalog.db")
	}
	cat, err := New(cfg, c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })

	require.NoError(t, cat.Seed(context.Background(), seedRooms))
	return cat
}

func TestCatalog_ListClassrooms(t *testing.T) {
	cat := newTestCatalog(t, &Config{}, nil)

	rooms, err := cat.ListClassrooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seedRooms, rooms)
}

func TestCatalog_ListClassroomsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := New(&Config{Path: path}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })
	require.NoError(t, cat.Seed(context.Background(), nil))

	rooms, err := cat.ListClassrooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestCatalog_ListClassroomsCached(t *testing.T) {
	c, err := inmemory.NewCache(&inmemory.Config{DefaultExpiration: 300, CleanupInterval: 600})
	require.NoError(t, err)

	cat := newTestCatalog(t, &Config{CacheTTL: time.Minute}, c)
	ctx := context.Background()

	rooms, err := cat.ListClassrooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedRooms, rooms)

	// Second read is served from cache; identical result.
	again, err := cat.ListClassrooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms, again)

	// A poisoned cache entry is dropped and the list re-read, not surfaced.
	require.NoError(t, c.Set(ctx, "classrooms:all", "not json{{{", time.Minute))
	recovered, err := cat.ListClassrooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedRooms, recovered)
}

func TestCatalog_RefreshCache(t *testing.T) {
	c, err := inmemory.NewCache(&inmemory.Config{DefaultExpiration: 300, CleanupInterval: 600})
	require.NoError(t, err)

	cat := newTestCatalog(t, &Config{CacheTTL: time.Minute}, c)
	ctx := context.Background()

	require.NoError(t, cat.RefreshCache(ctx))

	val, err := c.Get(ctx, "classrooms:all")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"5VR","capacity":35},{"name":"2GK","capacity":38}]`, val.(string))
}

// Holding the pool's only connection makes the next read fail with
// ErrPoolExhausted within the checkout timeout instead of hanging.
func TestCatalog_PoolExhaustion(t *testing.T) {
	cat := newTestCatalog(t, &Config{
		MaxOpenConns:    1,
		CheckoutTimeout: 100 * time.Millisecond,
	}, nil)
	ctx := context.Background()

	held, err := cat.db.Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	start := time.Now()
	_, err = cat.ListClassrooms(ctx)
	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.Less(t, time.Since(start), 2*time.Second)

	// Releasing the connection makes reads succeed again.
	require.NoError(t, held.Close())
	rooms, err := cat.ListClassrooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedRooms, rooms)
}

func TestCatalog_CorruptRow(t *testing.T) {
	cat := newTestCatalog(t, &Config{}, nil)
	ctx := context.Background()

	_, err := cat.db.ExecContext(ctx, `INSERT INTO classroom (name, capacity) VALUES ('9ZZ', -1)`)
	require.NoError(t, err)

	_, err = cat.ListClassrooms(ctx)
	assert.ErrorIs(t, err, ErrCorruptRow)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classrooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: 5VR\n  capacity: 35\n- name: 2GK\n  capacity: 38\n"), 0o600))

	rooms, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, seedRooms, rooms)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
