// ABOUTME: Server-side recipe page built on a goquery DOM
// ABOUTME: Acts as the card container and as the environment the offline registrar runs in

package page

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"recipes-app/core/domain"
	coreerrors "recipes-app/core/errors"
	"recipes-app/core/offline"
)

//go:embed static
var staticFS embed.FS

const (
	shellFile         = "static/index.html"
	containerSelector = "main"
	payloadType       = "application/json"
)

// Page is one rendering of the recipe document
type Page struct {
	doc       *goquery.Document
	url       string
	workers   bool
	onLoad    []func()
	loaded    bool
	registers []offline.Registration
}

// Option configures a Page
type Option func(*Page)

// WithServiceWorker sets whether the page supports worker registration.
func WithServiceWorker(enabled bool) Option {
	return func(p *Page) {
		p.workers = enabled
	}
}

// New parses the page shell. pageURL is the address the page is served from
// and is used to resolve the worker script and its scope.
func New(pageURL string, opts ...Option) (*Page, error) {
	shell, err := staticFS.ReadFile(shellFile)
	if err != nil {
		return nil, fmt.Errorf("reading page shell: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("parsing page shell: %w", err)
	}

	p := &Page{
		doc:     doc,
		url:     pageURL,
		workers: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Append adds a custom element carrying payload to the <main> container.
func (p *Page) Append(tag string, payload domain.Recipe) error {
	container := p.doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return errors.New("page has no <main> container")
	}

	// Escape <, > and & so the payload cannot close its script element.
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, payload.Raw())
	if escaped.Len() == 0 {
		escaped.WriteString("null")
	}

	data := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "type", Val: payloadType}},
	}
	data.AppendChild(&html.Node{Type: html.TextNode, Data: escaped.String()})

	card := &html.Node{Type: html.ElementNode, Data: tag}
	card.AppendChild(data)

	container.AppendNodes(card)
	return nil
}

// ServiceWorker implements offline.Environment.
func (p *Page) ServiceWorker() (offline.WorkerContainer, bool) {
	if !p.workers {
		return nil, false
	}
	return workerContainer{page: p}, true
}

// OnLoad implements offline.Environment. Listeners added after Load never run.
func (p *Page) OnLoad(fn func()) {
	if fn == nil {
		return
	}
	p.onLoad = append(p.onLoad, fn)
}

// Load fires the load event once, running listeners in registration order.
func (p *Page) Load() {
	if p.loaded {
		return
	}
	p.loaded = true
	listeners := p.onLoad
	p.onLoad = nil
	for _, fn := range listeners {
		fn()
	}
}

// Render fires the load event and writes the document.
func (p *Page) Render(w io.Writer) error {
	p.Load()
	return html.Render(w, p.doc.Get(0))
}

// HTML is a convenience wrapper around Render.
func (p *Page) HTML() (string, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// workerContainer registers a worker by emitting the browser-side
// registration script into the page head.
type workerContainer struct {
	page *Page
}

const registrationScript = `
if ('serviceWorker' in navigator) {
  window.addEventListener('load', () => {
    navigator.serviceWorker.register(%s)
      .then((registration) => {
        console.log('Service Worker registration successful with scope: ', registration.scope);
      })
      .catch((error) => {
        console.error('Service Worker registration failed:', error);
      });
  });
}
`

func (c workerContainer) Register(ctx context.Context, scriptURL string) (offline.Registration, error) {
	if err := ctx.Err(); err != nil {
		return offline.Registration{}, err
	}

	resolved, scope, err := offline.DefaultScope(c.page.url, scriptURL)
	if err != nil {
		return offline.Registration{}, fmt.Errorf("resolving worker script %q: %w", scriptURL, err)
	}

	head := c.page.doc.Find("head").First()
	if head.Length() == 0 {
		return offline.Registration{}, errors.New("page has no <head>")
	}

	quoted, err := json.Marshal(scriptURL)
	if err != nil {
		return offline.Registration{}, err
	}
	script := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf(registrationScript, quoted)})
	head.AppendNodes(script)

	reg := offline.Registration{ScriptURL: resolved, Scope: scope}
	c.page.registers = append(c.page.registers, reg)
	return reg, nil
}

// Asset returns an embedded static file by its path below static/, and its
// content type.
func Asset(name string) ([]byte, string, error) {
	clean := path.Clean("/" + name)[1:]
	data, err := staticFS.ReadFile("static/" + clean)
	if err != nil || clean == "" {
		return nil, "", &coreerrors.NotFoundError{Resource: "asset", ID: name}
	}
	return data, contentType(clean), nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".js":
		return "application/javascript"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
