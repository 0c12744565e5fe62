// ABOUTME: Bootstrapper runs once per page: offline registration, recipe retrieval, rendering
// ABOUTME: Retrieval failures are logged and rendering proceeds with no recipes

package bootstrap

import (
	"context"

	"recipes-app/core/domain"
	"recipes-app/core/interfaces"
	"recipes-app/core/offline"
	"recipes-app/core/render"
)

// RecipeSource provides the recipe collection
type RecipeSource interface {
	GetRecipes(ctx context.Context) (domain.Collection, error)
}

// Page is the document being initialised
type Page interface {
	render.Container
	offline.Environment
}

// Bootstrapper wires the recipe source, renderer and offline registrar
type Bootstrapper struct {
	recipes   RecipeSource
	registrar *offline.Registrar
	log       interfaces.Logger
}

// New creates a bootstrapper. A nil registrar skips offline registration.
func New(recipes RecipeSource, registrar *offline.Registrar, logger interfaces.Logger) *Bootstrapper {
	return &Bootstrapper{
		recipes:   recipes,
		registrar: registrar,
		log:       interfaces.LoggerOrNop(logger),
	}
}

// Init starts offline registration, loads the recipes and adds them to the
// page. The returned error only reports a page that refused the cards.
func (b *Bootstrapper) Init(ctx context.Context, page Page) error {
	if b.registrar != nil {
		b.registrar.Initialize(ctx, page)
	}

	var recipes domain.Collection
	if b.recipes != nil {
		var err error
		recipes, err = b.recipes.GetRecipes(ctx)
		if err != nil {
			b.log.Error("Failed to load recipes", map[string]interface{}{
				"error": err.Error(),
			})
			recipes = nil
		}
	}

	return render.AddRecipesToDocument(page, recipes)
}
