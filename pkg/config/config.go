package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/classboard/classboard/pkg/types"
)

// AppConfig is the root configuration for the classboard service
type AppConfig struct {
	App       AppInfo         `mapstructure:"app"`
	APIServer APIServerConfig `mapstructure:"apiserver"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

type AppInfo struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type APIServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// CacheConfig selects and configures the classroom cache backend
// Backend is one of "inmemory", "redis" or "none"
type CacheConfig struct {
	Backend  string              `mapstructure:"backend"`
	InMemory InMemoryCacheConfig `mapstructure:"inmemory"`
	Redis    RedisCacheConfig    `mapstructure:"redis"`
}

// InMemoryCacheConfig holds the in-memory cache settings, durations in seconds
type InMemoryCacheConfig struct {
	DefaultExpiration int `mapstructure:"default_expiration"`
	CleanupInterval   int `mapstructure:"cleanup_interval"`
}

type RedisCacheConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig holds the classroom catalog's sqlite settings
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	CheckoutTimeout time.Duration `mapstructure:"checkout_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// SessionConfig holds the audit token settings
type SessionConfig struct {
	SigningKey string `mapstructure:"signing_key"`
	CookieName string `mapstructure:"cookie_name"`
}

// SeedConfig holds the startup state: the initial teacher and the classroom
// rows. ClassroomsFile, when set, overrides the inline Classrooms list
type SeedConfig struct {
	Teacher        string            `mapstructure:"teacher"`
	Classrooms     []types.Classroom `mapstructure:"classrooms"`
	ClassroomsFile string            `mapstructure:"classrooms_file"`
}

// ErrMissingSigningKey is returned when no session signing key is configured
var ErrMissingSigningKey = errors.New("session.signing_key must be set")

// Load reads configuration from the given YAML file (optional), environment
// variables prefixed CLASSBOARD_, and built-in defaults, in that precedence
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("app.name", "classboard")
	v.SetDefault("app.environment", "local")
	v.SetDefault("apiserver.host", "127.0.0.1")
	v.SetDefault("apiserver.port", 8088)
	v.SetDefault("apiserver.cors.allowed_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	v.SetDefault("apiserver.cors.allowed_headers", []string{"Origin", "Content-Type"})
	v.SetDefault("cache.backend", "inmemory")
	v.SetDefault("cache.inmemory.default_expiration", 300)
	v.SetDefault("cache.inmemory.cleanup_interval", 600)
	v.SetDefault("cache.redis.addr", "127.0.0.1:6379")
	v.SetDefault("database.path", "classboard.db")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.checkout_timeout", 2*time.Second)
	v.SetDefault("database.cache_ttl", 5*time.Minute)
	v.SetDefault("session.cookie_name", "classboard_session")
	// Registered empty so the CLASSBOARD_SESSION_SIGNING_KEY env override is
	// visible to Unmarshal.
	v.SetDefault("session.signing_key", "")
	v.SetDefault("seed.teacher", "Mat")

	v.SetEnvPrefix("CLASSBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Session.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}

	return &cfg, nil
}
