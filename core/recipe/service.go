// ABOUTME: Recipe service reads the recipe collection from the cache or, on a miss, from its sources
// ABOUTME: Sources are fetched one at a time; any failure discards the partial result

package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"recipes-app/core/domain"
	coreerrors "recipes-app/core/errors"
	"recipes-app/core/interfaces"
)

// DefaultCacheKey is the key the serialized collection is stored under.
const DefaultCacheKey = "recipes"

// DefaultSources are the recipe documents served by the Lab 8 starter site.
var DefaultSources = []string{
	"https://adarsh249.github.io/Lab8-Starter/recipes/1_50-thanksgiving-side-dishes.json",
	"https://adarsh249.github.io/Lab8-Starter/recipes/2_roasting-turkey-breast-with-stuffing.json",
	"https://adarsh249.github.io/Lab8-Starter/recipes/3_moms-cornbread-stuffing.json",
	"https://adarsh249.github.io/Lab8-Starter/recipes/4_50-indulgent-thanksgiving-side-dishes-for-any-holiday-gathering.json",
	"https://adarsh249.github.io/Lab8-Starter/recipes/5_healthy-thanksgiving-recipe-crockpot-turkey-breast.json",
	"https://adarsh249.github.io/Lab8-Starter/recipes/6_one-pot-thanksgiving-dinner.json",
}

// Service provides the recipe collection
type Service struct {
	deps     interfaces.Dependencies
	log      interfaces.Logger
	sources  []string
	cacheKey string
}

// Option configures a Service
type Option func(*Service)

// WithSources replaces the default source list.
func WithSources(sources []string) Option {
	return func(s *Service) {
		s.sources = append([]string(nil), sources...)
	}
}

// WithCacheKey replaces the default cache key.
func WithCacheKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.cacheKey = key
		}
	}
}

// NewService creates a new recipe service instance
func NewService(deps interfaces.Dependencies, opts ...Option) *Service {
	s := &Service{
		deps:     deps,
		log:      interfaces.LoggerOrNop(deps.Logger),
		sources:  append([]string(nil), DefaultSources...),
		cacheKey: DefaultCacheKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sources returns a copy of the configured source URLs
func (s *Service) Sources() []string {
	return append([]string(nil), s.sources...)
}

// CacheKey returns the key the collection is stored under
func (s *Service) CacheKey() string {
	return s.cacheKey
}

// GetRecipes returns the recipe collection. A cached collection is returned
// as-is without touching the network. Otherwise every source is fetched in
// order and the complete collection is written back to the cache; if any
// source fails, nothing is cached and the error is returned.
func (s *Service) GetRecipes(ctx context.Context) (domain.Collection, error) {
	cached, err := s.getCachedRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		s.log.Debug("Recipes served from cache", map[string]interface{}{
			"key":   s.cacheKey,
			"count": len(cached),
		})
		return cached, nil
	}

	if len(s.sources) == 0 {
		s.log.Warn("No recipe sources configured", nil)
		return domain.Collection{}, nil
	}

	recipes := make(domain.Collection, 0, len(s.sources))
	for _, sourceURL := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recipe, err := s.fetchRecipe(ctx, sourceURL)
		if err != nil {
			s.log.Error("Error fetching recipes", map[string]interface{}{
				"url":     sourceURL,
				"fetched": len(recipes),
				"total":   len(s.sources),
				"error":   err.Error(),
			})
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	if err := s.cacheRecipes(ctx, recipes); err != nil {
		s.log.Error("Failed to save recipes to cache", map[string]interface{}{
			"key":   s.cacheKey,
			"error": err.Error(),
		})
	}

	s.log.Info("Recipes fetched from sources", map[string]interface{}{
		"count": len(recipes),
	})
	return recipes, nil
}

// ClearCache removes the stored collection so the next GetRecipes call
// fetches from the sources again.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.deps.Cache == nil {
		return nil
	}
	if err := s.deps.Cache.Delete(ctx, s.cacheKey); err != nil {
		return coreerrors.WrapError(err, "clearing recipe cache")
	}
	s.log.Info("Recipe cache cleared", map[string]interface{}{
		"key": s.cacheKey,
	})
	return nil
}

// fetchRecipe retrieves and parses a single source document
func (s *Service) fetchRecipe(ctx context.Context, sourceURL string) (domain.Recipe, error) {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return domain.Recipe{}, &coreerrors.ValidationError{
			Field:   "source",
			Message: fmt.Sprintf("invalid URL %q", sourceURL),
		}
	}

	if s.deps.HTTPClient == nil {
		return domain.Recipe{}, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, sourceURL)
	if err != nil {
		return domain.Recipe{}, &coreerrors.ExternalAPIError{
			Message: err.Error(),
			URL:     sourceURL,
			Err:     err,
		}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return domain.Recipe{}, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "source returned non-2xx status",
			URL:        sourceURL,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return domain.Recipe{}, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "reading body: " + err.Error(),
			URL:        sourceURL,
			Err:        err,
		}
	}

	recipe, err := domain.ParseRecipe(body)
	if err != nil {
		return domain.Recipe{}, &coreerrors.DecodeError{Source: sourceURL, Err: err}
	}
	return recipe, nil
}

// getCachedRecipes returns the stored collection, or nil on a miss.
// Store failures other than a miss are logged and treated as a miss.
func (s *Service) getCachedRecipes(ctx context.Context) (domain.Collection, error) {
	if s.deps.Cache == nil {
		return nil, nil
	}

	data, err := s.deps.Cache.Get(ctx, s.cacheKey)
	if err != nil {
		if !interfaces.IsCacheMiss(err) {
			s.log.Warn("Recipe cache read failed", map[string]interface{}{
				"key":   s.cacheKey,
				"error": err.Error(),
			})
		}
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	recipes, err := domain.DecodeCollection(data)
	if err != nil {
		return nil, &coreerrors.DecodeError{Source: "cache:" + s.cacheKey, Err: err}
	}
	return recipes, nil
}

// cacheRecipes stores the collection with no expiry
func (s *Service) cacheRecipes(ctx context.Context, recipes domain.Collection) error {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := recipes.Encode()
	if err != nil {
		return err
	}
	return s.deps.Cache.Set(ctx, s.cacheKey, data, 0)
}
