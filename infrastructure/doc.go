// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: recipe stores, the source HTTP client and
// the structured logger.
//
// The infrastructure package is organized by technical concern:
//
// - cache: backend selection from configuration
// - cache/memory: in-process store on patrickmn/go-cache
// - cache/redis: Redis store on go-redis
// - cache/sqlite: file-backed store on go-sqlite3
// - http/standard: net/http client, one request per call
// - logger/structured: logrus logger with optional lumberjack rotation
//
// # Cache Implementations
//
// Every store treats a zero TTL as "never expires", which is how the
// recipe collection is written.
//
//	store, closeStore, err := cache.New(cfg.Cache, logger)
//	defer closeStore()
//	err = store.Set(ctx, "recipes", blob, 0)
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(0)
//	resp, err := client.Get(ctx, "https://example.com/recipe.json")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.NewLogger(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Recipes fetched from sources", map[string]interface{}{
//	    "count": 6,
//	})
package infrastructure
