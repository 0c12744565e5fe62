package page

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipes-app/core/domain"
	coreerrors "recipes-app/core/errors"
	"recipes-app/core/offline"
	"recipes-app/core/render"
)

func newTestPage(t *testing.T, opts ...Option) *Page {
	t.Helper()
	p, err := New("https://recipes.example.com/", opts...)
	require.NoError(t, err)
	return p
}

// cards returns the payloads of the cards in the container, in order.
func (p *Page) cards(tag string) ([]domain.Recipe, error) {
	var (
		cards []domain.Recipe
		err   error
	)
	p.doc.Find(containerSelector).First().ChildrenFiltered(tag).EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.ChildrenFiltered(`script[type="` + payloadType + `"]`).Text()
		var r domain.Recipe
		r, err = domain.ParseRecipe([]byte(text))
		if err != nil {
			err = fmt.Errorf("card %d: %w", i, err)
			return false
		}
		cards = append(cards, r)
		return true
	})
	return cards, err
}

// registrations returns the worker registrations made on this page
func (p *Page) registrations() []offline.Registration {
	return append([]offline.Registration(nil), p.registers...)
}

func TestNew_ParsesShell(t *testing.T) {
	p := newTestPage(t)

	assert.Equal(t, 1, p.doc.Find("main").Length())
	assert.Equal(t, 0, p.doc.Find("main").Children().Length())
}

func TestAppend_RendersCardsInOrder(t *testing.T) {
	p := newTestPage(t)
	recipes := domain.Collection{
		domain.MustParseRecipe(`{"titleTxt":"Side dishes","rating":4.5}`),
		domain.MustParseRecipe(`{"titleTxt":"Cornbread stuffing"}`),
	}

	require.NoError(t, render.AddRecipesToDocument(p, recipes))

	cards, err := p.cards(render.CardTag)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for i := range recipes {
		assert.True(t, recipes[i].Equal(cards[i]), "card %d payload modified", i)
	}
}

func TestAppend_NilCollectionLeavesPageUntouched(t *testing.T) {
	p := newTestPage(t)
	before, err := newTestPage(t).HTML()
	require.NoError(t, err)

	require.NoError(t, render.AddRecipesToDocument(p, nil))

	after, err := p.HTML()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAppend_EscapesScriptBreakout(t *testing.T) {
	p := newTestPage(t)
	hostile := domain.MustParseRecipe(`{"titleTxt":"</script><script>alert(1)</script>"}`)

	require.NoError(t, p.Append(render.CardTag, hostile))

	out, err := p.HTML()
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)")

	// The payload survives a round trip through the serialized HTML.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	text := doc.Find("main > recipe-card > script").Text()
	parsed, err := domain.ParseRecipe([]byte(text))
	require.NoError(t, err)
	v, err := parsed.Value()
	require.NoError(t, err)
	assert.Equal(t, "</script><script>alert(1)</script>", v.(map[string]interface{})["titleTxt"])
}

func TestServiceWorker_Disabled(t *testing.T) {
	p := newTestPage(t, WithServiceWorker(false))

	container, ok := p.ServiceWorker()

	assert.False(t, ok)
	assert.Nil(t, container)
}

func TestRegistrar_RegistersOnLoad(t *testing.T) {
	p, err := New("https://recipes.example.com/Lab8-Starter/index.html")
	require.NoError(t, err)

	offline.NewRegistrar(nil, "").Initialize(context.Background(), p)
	assert.Empty(t, p.registrations(), "nothing happens before the load event")

	out, err := p.HTML()
	require.NoError(t, err)

	regs := p.registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, "https://recipes.example.com/Lab8-Starter/sw.js", regs[0].ScriptURL)
	assert.Equal(t, "https://recipes.example.com/Lab8-Starter/", regs[0].Scope)
	assert.Contains(t, out, `navigator.serviceWorker.register("./sw.js")`)

	// The browser registers only once its own load event has fired
	onLoad := strings.Index(out, "window.addEventListener('load'")
	require.GreaterOrEqual(t, onLoad, 0)
	assert.Less(t, onLoad, strings.Index(out, "navigator.serviceWorker.register("))
}

func TestRegistrar_NoWorkerSupport(t *testing.T) {
	p := newTestPage(t, WithServiceWorker(false))

	offline.NewRegistrar(nil, "").Initialize(context.Background(), p)
	out, err := p.HTML()
	require.NoError(t, err)

	assert.Empty(t, p.registrations())
	assert.NotContains(t, out, "serviceWorker")
}

func TestLoad_FiresOnce(t *testing.T) {
	p := newTestPage(t)
	calls := 0
	p.OnLoad(func() { calls++ })

	p.Load()
	p.Load()
	p.OnLoad(func() { calls++ })
	p.Load()

	assert.Equal(t, 1, calls)
}

func TestAsset(t *testing.T) {
	data, ct, err := Asset("sw.js")
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", ct)
	assert.Contains(t, string(data), "addEventListener('fetch'")

	data, ct, err = Asset("scripts/RecipeCard.js")
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", ct)
	assert.Contains(t, string(data), "customElements.define('recipe-card'")
}

func TestAsset_NotFound(t *testing.T) {
	for _, name := range []string{"missing.js", "", "../page.go", "scripts"} {
		_, _, err := Asset(name)
		assert.True(t, coreerrors.IsNotFound(err), "expected not found for %q, got %v", name, err)
	}
}
