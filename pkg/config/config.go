// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, recipe sources and logging

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	coreerrors "recipes-app/core/errors"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Recipes contains recipe retrieval configuration
	Recipes RecipesConfig

	// Log contains logger configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `env:"PORT" envDefault:"8000"`

	// PublicURL is the address clients reach the page at. Worker scopes are
	// resolved against it. Defaults to http://localhost:<Port>/.
	PublicURL string `env:"PUBLIC_URL"`

	// RateLimit is the number of requests allowed per client per RateWindow.
	// Zero disables rate limiting.
	RateLimit int `env:"RATE_LIMIT" envDefault:"100"`

	// RateWindow is the rate limit window
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`

	// TrustProxy keys rate limiting on X-Forwarded-For / X-Real-IP.
	// Only enable behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `env:"CACHE_TYPE" envDefault:"memory"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`

	// Password is the Redis authentication password
	Password string `env:"REDIS_PASSWORD"`

	// DB is the Redis database number
	DB int `env:"REDIS_DB" envDefault:"0"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `env:"SQLITE_PATH" envDefault:"recipes.db"`
}

// RecipesConfig holds recipe retrieval configuration
type RecipesConfig struct {
	// Sources overrides the built-in recipe URL list
	Sources []string `env:"RECIPE_URLS" envSeparator:","`

	// CacheKey is the key the collection is stored under
	CacheKey string `env:"RECIPE_CACHE_KEY" envDefault:"recipes"`

	// HTTPTimeout bounds each source request. Zero means no timeout.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`

	// WorkerScript is the service worker path registered by the page
	WorkerScript string `env:"SERVICE_WORKER_PATH" envDefault:"./sw.js"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	File   string `env:"LOG_FILE"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load loads configuration from the given variables instead of the process environment
func Load(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = "http://localhost:" + c.Server.Port + "/"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return &coreerrors.ValidationError{Field: "PORT", Message: "port cannot be empty"}
	}

	if u, err := url.Parse(c.Server.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &coreerrors.ValidationError{Field: "PUBLIC_URL", Message: "must be an absolute URL"}
	}

	if c.Server.RateLimit < 0 {
		return &coreerrors.ValidationError{Field: "RATE_LIMIT", Message: "cannot be negative"}
	}

	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return &coreerrors.ValidationError{Field: "RATE_WINDOW", Message: "must be positive when rate limiting is enabled"}
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return &coreerrors.ValidationError{Field: "REDIS_ADDRESS", Message: "cannot be empty when using redis cache"}
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return &coreerrors.ValidationError{Field: "SQLITE_PATH", Message: "cannot be empty when using sqlite cache"}
		}
	default:
		return &coreerrors.ValidationError{Field: "CACHE_TYPE", Message: "cache type must be 'memory', 'redis' or 'sqlite'"}
	}

	if c.Recipes.CacheKey == "" {
		return &coreerrors.ValidationError{Field: "RECIPE_CACHE_KEY", Message: "cannot be empty"}
	}

	if c.Recipes.HTTPTimeout < 0 {
		return &coreerrors.ValidationError{Field: "HTTP_TIMEOUT", Message: "cannot be negative"}
	}

	for _, src := range c.Recipes.Sources {
		u, err := url.Parse(src)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return &coreerrors.ValidationError{Field: "RECIPE_URLS", Message: fmt.Sprintf("invalid source URL %q", src)}
		}
	}

	if c.Recipes.WorkerScript == "" {
		return &coreerrors.ValidationError{Field: "SERVICE_WORKER_PATH", Message: "cannot be empty"}
	}

	return nil
}
