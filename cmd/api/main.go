// ABOUTME: Main entry point for the Recipes server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipes-app/api"
	"recipes-app/api/handlers"
	"recipes-app/api/middleware"
	"recipes-app/core/bootstrap"
	"recipes-app/core/interfaces"
	"recipes-app/core/offline"
	"recipes-app/core/recipe"
	"recipes-app/infrastructure/cache"
	stdhttp "recipes-app/infrastructure/http/standard"
	"recipes-app/infrastructure/logger/structured"
	"recipes-app/pkg/config"
	"recipes-app/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.NewLogger(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManager("FEATURE_", featureflags.Defaults)

	logger.Info("Starting Recipes server", map[string]interface{}{
		"port":       cfg.Server.Port,
		"public_url": cfg.Server.PublicURL,
		"cache_type": cfg.Cache.Type,
		"flags":      flags.GetAllFlags(),
	})

	store, closeStore, err := cache.New(cfg.Cache, logger)
	if err != nil {
		logger.Error("Failed to create cache", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer closeStore()

	// Source requests are logged through the round tripper
	httpClient := stdhttp.NewStandardHTTPClient(cfg.Recipes.HTTPTimeout).
		WithTransport(&middleware.LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Logger:    logger,
		})

	deps := interfaces.Dependencies{
		Cache:      store,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	opts := []recipe.Option{recipe.WithCacheKey(cfg.Recipes.CacheKey)}
	if len(cfg.Recipes.Sources) > 0 {
		opts = append(opts, recipe.WithSources(cfg.Recipes.Sources))
	}
	recipeService := recipe.NewService(deps, opts...)

	registrar := offline.NewRegistrar(logger, cfg.Recipes.WorkerScript)
	boot := bootstrap.New(recipeService, registrar, logger)

	apiConfig := api.APIConfig{Logger: logger}
	if cfg.Server.RateLimit > 0 && flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow,
			middleware.WithTrustedProxy(cfg.Server.TrustProxy))
		defer limiter.Stop()
		apiConfig.Limiter = limiter
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	recipeHandler := handlers.NewRecipeHandler(recipeService, flags)
	recipeHandler.RegisterRoutes(humaAPI)

	pageHandler := handlers.NewPageHandler(boot, flags, cfg.Server.PublicURL, logger)
	pageHandler.RegisterRoutes(router)

	// No write timeout: a cold page load waits on every source in turn
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
			"sources": len(recipeService.Sources()),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}
