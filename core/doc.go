// Package core contains the logic of the recipe page loader.
// It has no web framework dependencies; the page, stores and transport are
// injected through interfaces.
//
// The core package is organized into several sub-packages:
//
// - domain: Recipe and Collection, opaque JSON documents
// - recipe: cache-or-fetch retrieval of the recipe collection
// - render: appends one recipe-card element per recipe to a container
// - offline: registers the offline service worker once a page has loaded
// - bootstrap: runs registration, retrieval and rendering for one page
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	recipes := recipe.NewService(deps)
//	boot := bootstrap.New(recipes, offline.NewRegistrar(myLogger, offline.DefaultScriptPath), myLogger)
//
//	// p implements render.Container and offline.Environment
//	err := boot.Init(ctx, p)
package core
