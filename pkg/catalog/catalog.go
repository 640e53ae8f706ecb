// Package catalog serves the read-mostly classroom reference table from a
// pooled sqlite connection. The table is seeded once at startup and never
// mutated afterwards, so reads can optionally go through a TTL cache.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"github.com/classboard/classboard/pkg/cache"
	"github.com/classboard/classboard/pkg/types"
)

const (
	// classroomsCacheKey is the cache key holding the serialized classroom list
	classroomsCacheKey = "classrooms:all"

	defaultMaxOpenConns    = 5
	defaultCheckoutTimeout = 2 * time.Second
)

var (
	// ErrPoolExhausted is returned when no connection could be checked out of
	// the pool within the configured timeout. Retryable by the caller
	ErrPoolExhausted = errors.New("classroom catalog connection pool exhausted")

	// ErrCorruptRow is returned when a classroom row does not match the seeded
	// schema. Not retryable; indicates a schema/data mismatch
	ErrCorruptRow = errors.New("classroom row does not match expected schema")
)

// Config holds the catalog settings
type Config struct {
	// Path is the sqlite database file path
	Path string

	// MaxOpenConns bounds the number of concurrently checked-out connections
	MaxOpenConns int

	// CheckoutTimeout bounds how long a read waits for a pooled connection
	// before failing with ErrPoolExhausted
	CheckoutTimeout time.Duration

	// CacheTTL is how long a cached classroom list stays fresh. Zero disables
	// expiry for the cache entry
	CacheTTL time.Duration
}

// Catalog is the read path over the classroom reference table
type Catalog struct {
	db              *sql.DB
	cache           cache.Cache
	cacheTTL        time.Duration
	checkoutTimeout time.Duration
	group           singleflight.Group
}

// New opens the sqlite database and configures the connection pool
// cacheClient may be nil to read straight from the database on every call
func New(cfg *Config, cacheClient cache.Cache) (*Catalog, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open classroom database at %s: %w", cfg.Path, err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = defaultMaxOpenConns
	}
	db.SetMaxOpenConns(maxConns)

	timeout := cfg.CheckoutTimeout
	if timeout <= 0 {
		timeout = defaultCheckoutTimeout
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &Catalog{
		db:              db,
		cache:           cacheClient,
		cacheTTL:        ttl,
		checkoutTimeout: timeout,
	}, nil
}

// Seed creates the classroom table and inserts rooms in order
// Startup-only: not safe to call concurrently with reads
func (c *Catalog) Seed(ctx context.Context, rooms []types.Classroom) error {
	if _, err := c.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS classroom (name TEXT, capacity INTEGER)`); err != nil {
		return fmt.Errorf("failed to create classroom table: %w", err)
	}

	// A restart over a persistent file must not duplicate the seed rows.
	var existing int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classroom`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to inspect classroom table: %w", err)
	}
	if existing > 0 {
		logrus.WithField("classrooms", existing).Info("classroom catalog already seeded")
		return nil
	}

	for _, room := range rooms {
		if _, err := c.db.ExecContext(ctx,
			`INSERT INTO classroom (name, capacity) VALUES (?, ?)`,
			room.Name, room.Capacity); err != nil {
			return fmt.Errorf("failed to seed classroom %s: %w", room.Name, err)
		}
	}

	logrus.WithField("classrooms", len(rooms)).Info("seeded classroom catalog")
	return nil
}

// ListClassrooms returns all classrooms in seeded order
// Served from cache when one is configured; concurrent cache misses are
// collapsed into a single database read
func (c *Catalog) ListClassrooms(ctx context.Context) ([]types.Classroom, error) {
	if c.cache == nil {
		return c.queryClassrooms(ctx)
	}

	if val, err := c.cache.Get(ctx, classroomsCacheKey); err == nil {
		var rooms []types.Classroom
		if raw, ok := val.(string); ok {
			if err := json.Unmarshal([]byte(raw), &rooms); err == nil {
				return rooms, nil
			}
		}
		// A malformed cache entry is dropped, not surfaced.
		_ = c.cache.Delete(ctx, classroomsCacheKey)
	}

	result, err, _ := c.group.Do(classroomsCacheKey, func() (interface{}, error) {
		rooms, err := c.queryClassrooms(ctx)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(rooms); err == nil {
			if err := c.cache.Set(ctx, classroomsCacheKey, string(data), c.cacheTTL); err != nil {
				logrus.WithError(err).Warn("failed to cache classroom list")
			}
		}
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]types.Classroom), nil
}

// RefreshCache re-reads the classroom table and replaces the cached list
// No-op without a configured cache
func (c *Catalog) RefreshCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	rooms, err := c.queryClassrooms(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal classroom list: %w", err)
	}
	return c.cache.Set(ctx, classroomsCacheKey, string(data), c.cacheTTL)
}

// queryClassrooms checks one connection out of the pool, runs the read query
// and releases the connection on every exit path
func (c *Catalog) queryClassrooms(ctx context.Context) ([]types.Classroom, error) {
	ctx, cancel := context.WithTimeout(ctx, c.checkoutTimeout)
	defer cancel()

	conn, err := c.db.Conn(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrPoolExhausted
		}
		return nil, fmt.Errorf("failed to check out catalog connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		`SELECT name, capacity FROM classroom ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classrooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]types.Classroom, 0)
	for rows.Next() {
		var room types.Classroom
		if err := rows.Scan(&room.Name, &room.Capacity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptRow, err)
		}
		if room.Capacity < 0 {
			return nil, fmt.Errorf("%w: classroom %s has negative capacity %d",
				ErrCorruptRow, room.Name, room.Capacity)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate classrooms: %w", err)
	}

	return rooms, nil
}

// Close releases the underlying connection pool
func (c *Catalog) Close() error {
	return c.db.Close()
}
