// ABOUTME: Offline registrar registers the service worker script once the page has loaded
// ABOUTME: Registration outcome is only logged and never reaches the caller

package offline

import (
	"context"
	"net/url"

	"recipes-app/core/interfaces"
)

// DefaultScriptPath is the worker script registered relative to the page.
const DefaultScriptPath = "./sw.js"

// Registration describes a successful worker registration
type Registration struct {
	ScriptURL string
	Scope     string
}

// WorkerContainer registers background worker scripts
type WorkerContainer interface {
	Register(ctx context.Context, scriptURL string) (Registration, error)
}

// Environment is where the registrar runs
type Environment interface {
	// ServiceWorker returns the worker container, or false when the
	// environment has no worker support.
	ServiceWorker() (WorkerContainer, bool)

	// OnLoad schedules fn to run when the environment's load event fires.
	OnLoad(fn func())
}

// Registrar registers the offline worker
type Registrar struct {
	log        interfaces.Logger
	scriptPath string
}

// NewRegistrar creates a registrar for scriptPath. An empty path means DefaultScriptPath.
func NewRegistrar(logger interfaces.Logger, scriptPath string) *Registrar {
	if scriptPath == "" {
		scriptPath = DefaultScriptPath
	}
	return &Registrar{
		log:        interfaces.LoggerOrNop(logger),
		scriptPath: scriptPath,
	}
}

// ScriptPath returns the registered script path
func (r *Registrar) ScriptPath() string {
	return r.scriptPath
}

// Initialize defers registration to the environment's load event. It does
// nothing when the environment lacks worker support.
func (r *Registrar) Initialize(ctx context.Context, env Environment) {
	container, ok := env.ServiceWorker()
	if !ok || container == nil {
		r.log.Debug("Service workers not supported, skipping registration", nil)
		return
	}

	ctx = context.WithoutCancel(ctx)
	env.OnLoad(func() {
		reg, err := container.Register(ctx, r.scriptPath)
		if err != nil {
			r.log.Error("Service Worker registration failed", map[string]interface{}{
				"script": r.scriptPath,
				"error":  err.Error(),
			})
			return
		}
		r.log.Info("Service Worker registration successful", map[string]interface{}{
			"script": reg.ScriptURL,
			"scope":  reg.Scope,
		})
	})
}

// DefaultScope resolves scriptPath against pageURL and returns the default
// registration scope, the directory holding the script.
func DefaultScope(pageURL, scriptPath string) (scriptURL, scope string, err error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", "", err
	}
	ref, err := url.Parse(scriptPath)
	if err != nil {
		return "", "", err
	}
	script := base.ResolveReference(ref)
	dir := script.ResolveReference(&url.URL{Path: "./"})
	return script.String(), dir.String(), nil
}
