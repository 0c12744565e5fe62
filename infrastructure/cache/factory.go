// ABOUTME: Builds the configured cache backend
// ABOUTME: Falls back to the in-memory cache when a remote backend is unavailable

package cache

import (
	"fmt"

	"recipes-app/core/interfaces"
	"recipes-app/infrastructure/cache/memory"
	"recipes-app/infrastructure/cache/redis"
	"recipes-app/infrastructure/cache/sqlite"
	"recipes-app/pkg/config"
)

// Cache types accepted in configuration
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeSQLite = "sqlite"
)

// New creates the cache selected by cfg.Type. The returned close function
// releases backend resources and is never nil. A Redis backend that cannot
// be reached falls back to memory; an SQLite file that cannot be opened is
// an error, since its whole point is persistence.
func New(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, func() error, error) {
	logger = interfaces.LoggerOrNop(logger)
	noop := func() error { return nil }

	switch cfg.Type {
	case TypeRedis:
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCache(), noop, nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, redisCache.Close, nil

	case TypeSQLite:
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache, sqliteCache.Close, nil

	case TypeMemory, "":
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
