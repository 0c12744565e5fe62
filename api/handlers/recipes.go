// ABOUTME: Recipe handlers for the Huma API
// ABOUTME: Exposes the recipe collection, its sources and the cache clearing action

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipes-app/core/domain"
	"recipes-app/pkg/featureflags"
)

// RecipeService interface defines the methods needed from the recipe service
type RecipeService interface {
	GetRecipes(ctx context.Context) (domain.Collection, error)
	ClearCache(ctx context.Context) error
	Sources() []string
}

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipeService RecipeService
	flags         featureflags.Manager
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService RecipeService, flags featureflags.Manager) *RecipeHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &RecipeHandler{
		recipeService: recipeService,
		flags:         flags,
	}
}

// RegisterRoutes registers all recipe-related routes
func (h *RecipeHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/recipes",
		Summary:     "List recipes",
		Description: "Returns the cached recipe collection, fetching every source in order on a cache miss",
		Tags:        []string{"Recipes"},
	}, h.ListRecipes)

	huma.Register(api, huma.Operation{
		OperationID: "listRecipeSources",
		Method:      http.MethodGet,
		Path:        "/api/recipes/sources",
		Summary:     "List recipe sources",
		Tags:        []string{"Recipes"},
	}, h.ListSources)

	huma.Register(api, huma.Operation{
		OperationID:   "clearRecipeCache",
		Method:        http.MethodDelete,
		Path:          "/api/recipes/cache",
		Summary:       "Clear the recipe cache",
		Description:   "Removes the stored collection so the next request fetches every source again",
		Tags:          []string{"Recipes"},
		DefaultStatus: http.StatusNoContent,
	}, h.ClearCache)
}

// ListRecipesInput defines the input for the ListRecipes operation
type ListRecipesInput struct{}

// ListRecipesOutput defines the output for the ListRecipes operation
type ListRecipesOutput struct {
	Body RecipesResponse
}

// RecipesResponse carries the collection in source order
type RecipesResponse struct {
	Count   int               `json:"count" doc:"Number of recipes"`
	Recipes []json.RawMessage `json:"recipes" doc:"Recipe documents, unmodified, in source order"`
}

// ListRecipes handles the GET /api/recipes endpoint
func (h *RecipeHandler) ListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	recipes, err := h.recipeService.GetRecipes(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	raw := make([]json.RawMessage, 0, len(recipes))
	for _, r := range recipes {
		raw = append(raw, json.RawMessage(r.Raw()))
	}

	return &ListRecipesOutput{
		Body: RecipesResponse{
			Count:   len(raw),
			Recipes: raw,
		},
	}, nil
}

// ListSourcesOutput defines the output for the ListSources operation
type ListSourcesOutput struct {
	Body struct {
		Sources []string `json:"sources" doc:"Source URLs in fetch order"`
	}
}

// ListSources handles the GET /api/recipes/sources endpoint
func (h *RecipeHandler) ListSources(ctx context.Context, input *struct{}) (*ListSourcesOutput, error) {
	out := &ListSourcesOutput{}
	out.Body.Sources = h.recipeService.Sources()
	if out.Body.Sources == nil {
		out.Body.Sources = []string{}
	}
	return out, nil
}

// ClearCache handles the DELETE /api/recipes/cache endpoint
func (h *RecipeHandler) ClearCache(ctx context.Context, input *struct{}) (*struct{}, error) {
	if !h.flags.IsEnabled(ctx, featureflags.CacheClearEnabled) {
		return nil, huma.Error404NotFound("cache clearing is disabled")
	}

	if err := h.recipeService.ClearCache(ctx); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}
