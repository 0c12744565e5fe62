// ABOUTME: Operator CLI for the recipe store
// ABOUTME: Lists, clears and renders the cached recipe collection using the server configuration

package main

import (
	"fmt"
	"os"

	"recipes-app/core/interfaces"
	"recipes-app/core/recipe"
	"recipes-app/infrastructure/cache"
	stdhttp "recipes-app/infrastructure/http/standard"
	"recipes-app/infrastructure/logger/structured"
	"recipes-app/pkg/config"
)

func main() {
	if err := newRootCmd(loadApp).Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp builds the recipe service from the environment, the same way the server does
func loadApp() (*app, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := structured.NewWithOutput(os.Stderr, structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	store, closeStore, err := cache.New(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	opts := []recipe.Option{recipe.WithCacheKey(cfg.Recipes.CacheKey)}
	if len(cfg.Recipes.Sources) > 0 {
		opts = append(opts, recipe.WithSources(cfg.Recipes.Sources))
	}

	service := recipe.NewService(interfaces.Dependencies{
		Cache:      store,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Recipes.HTTPTimeout),
		Logger:     logger,
	}, opts...)

	return &app{
		recipes:      service,
		logger:       logger,
		publicURL:    cfg.Server.PublicURL,
		workerScript: cfg.Recipes.WorkerScript,
		close:        closeStore,
	}, nil
}
