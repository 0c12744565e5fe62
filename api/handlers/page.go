// ABOUTME: Page handlers serving the rendered recipe page and its static scripts
// ABOUTME: Every page request runs the bootstrapper against a fresh document

package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipes-app/core/bootstrap"
	coreerrors "recipes-app/core/errors"
	"recipes-app/core/interfaces"
	"recipes-app/pkg/featureflags"
	"recipes-app/web/page"
)

// Bootstrapper initialises a page
type Bootstrapper interface {
	Init(ctx context.Context, p bootstrap.Page) error
}

// PageHandler serves the HTML page and the scripts it loads
type PageHandler struct {
	boot      Bootstrapper
	flags     featureflags.Manager
	publicURL string
	log       interfaces.Logger
}

// NewPageHandler creates a page handler. publicURL is the address clients
// load the page from; worker scopes are resolved against it.
func NewPageHandler(boot Bootstrapper, flags featureflags.Manager, publicURL string, logger interfaces.Logger) *PageHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &PageHandler{
		boot:      boot,
		flags:     flags,
		publicURL: publicURL,
		log:       interfaces.LoggerOrNop(logger),
	}
}

// RegisterRoutes mounts the page routes on the router
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ServePage)
	r.Get("/sw.js", h.ServeWorker)
	r.Get("/assets/*", h.ServeAsset)
	r.Get("/healthz", h.Health)
}

// ServePage renders the recipe page
func (h *PageHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := page.New(h.publicURL,
		page.WithServiceWorker(h.flags.IsEnabled(ctx, featureflags.ServiceWorkerEnabled)))
	if err != nil {
		h.fail(w, "Failed to build page", err)
		return
	}

	if err := h.boot.Init(ctx, p); err != nil {
		h.fail(w, "Failed to initialise page", err)
		return
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		h.fail(w, "Failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ServeWorker serves the offline worker script
func (h *PageHandler) ServeWorker(w http.ResponseWriter, r *http.Request) {
	data, ct, err := page.Asset("sw.js")
	if err != nil {
		h.fail(w, "Worker script missing", err)
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// ServeAsset serves embedded scripts below /assets/
func (h *PageHandler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	data, ct, err := page.Asset(chi.URLParam(r, "*"))
	if err != nil {
		if coreerrors.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		h.fail(w, "Failed to read asset", err)
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Write(data)
}

// Health reports liveness
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *PageHandler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, map[string]interface{}{
		"error": err.Error(),
	})
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
