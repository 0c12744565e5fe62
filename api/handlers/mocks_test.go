package handlers

import (
	"context"

	"recipes-app/core/domain"
)

// mockRecipeService is a mock implementation of the recipe service
type mockRecipeService struct {
	getRecipesFunc func(ctx context.Context) (domain.Collection, error)
	clearCacheFunc func(ctx context.Context) error
	sources        []string
	clears         int
}

func (m *mockRecipeService) GetRecipes(ctx context.Context) (domain.Collection, error) {
	if m.getRecipesFunc != nil {
		return m.getRecipesFunc(ctx)
	}
	return nil, nil
}

func (m *mockRecipeService) ClearCache(ctx context.Context) error {
	m.clears++
	if m.clearCacheFunc != nil {
		return m.clearCacheFunc(ctx)
	}
	return nil
}

func (m *mockRecipeService) Sources() []string {
	return m.sources
}
