// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides the chi router, middleware chain and OpenAPI documentation

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"recipes-app/api/middleware"
	"recipes-app/core/interfaces"
)

const (
	apiTitle   = "Recipes API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// Limiter enables per-client rate limiting when set
	Limiter *middleware.RateLimiter
}

func newRouter() chi.Router {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	return router
}

func newHuma(router chi.Router) huma.API {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Serves the recipe page, its offline worker and the cached recipe collection"

	// OpenAPI spec at /openapi.json, docs at /docs
	return humachi.New(router, config)
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := newRouter()
	return newHuma(router), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := newRouter()

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Limiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter))
	}

	return newHuma(router), router
}
