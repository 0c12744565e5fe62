// Package api provides the HTTP layer of the recipes server.
// JSON operations use the Huma framework on a chi router, which gives
// OpenAPI documentation and request validation; the HTML page and its
// scripts are plain chi routes.
//
// # Architecture
//
// - server.go: router, CORS and middleware setup
// - handlers/: page, script and recipe handlers
// - middleware/: request logging with request IDs, per-IP rate limiting
//
// # Routes
//
//	GET    /                              rendered recipe page
//	GET    /sw.js                         offline worker script
//	GET    /assets/scripts/RecipeCard.js  recipe-card element
//	GET    /api/recipes                   recipe collection as JSON
//	GET    /api/recipes/sources           configured source URLs
//	DELETE /api/recipes/cache             clear the stored collection
//	GET    /healthz                       liveness
//
// The OpenAPI spec is served at /openapi.json and docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{Logger: logger})
//	handlers.NewRecipeHandler(recipeService, flags).RegisterRoutes(humaAPI)
//	handlers.NewPageHandler(boot, flags, publicURL, logger).RegisterRoutes(router)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// JSON errors follow RFC 7807. Source failures map to 502, or 503 when the
// source itself returned a 5xx. The HTML page never fails on a source
// error; it renders without cards.
package api
