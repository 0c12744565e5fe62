package offline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContainer struct {
	registered []string
	err        error
}

func (c *fakeContainer) Register(ctx context.Context, scriptURL string) (Registration, error) {
	c.registered = append(c.registered, scriptURL)
	if c.err != nil {
		return Registration{}, c.err
	}
	return Registration{ScriptURL: scriptURL, Scope: "/"}, nil
}

type fakeEnv struct {
	container *fakeContainer
	supported bool
	onLoad    []func()
}

func (e *fakeEnv) ServiceWorker() (WorkerContainer, bool) {
	if !e.supported {
		return nil, false
	}
	return e.container, true
}

func (e *fakeEnv) OnLoad(fn func()) {
	e.onLoad = append(e.onLoad, fn)
}

func (e *fakeEnv) load() {
	for _, fn := range e.onLoad {
		fn()
	}
}

type countingLogger struct {
	infos, errors int
}

func (l *countingLogger) Debug(string, map[string]interface{}) {}
func (l *countingLogger) Info(string, map[string]interface{})  { l.infos++ }
func (l *countingLogger) Warn(string, map[string]interface{})  {}
func (l *countingLogger) Error(string, map[string]interface{}) { l.errors++ }

func TestNewRegistrar_DefaultScriptPath(t *testing.T) {
	assert.Equal(t, DefaultScriptPath, NewRegistrar(nil, "").ScriptPath())
	assert.Equal(t, "/worker.js", NewRegistrar(nil, "/worker.js").ScriptPath())
}

func TestInitialize_UnsupportedEnvironment(t *testing.T) {
	env := &fakeEnv{supported: false, container: &fakeContainer{}}

	assert.NotPanics(t, func() {
		NewRegistrar(nil, "").Initialize(context.Background(), env)
	})

	assert.Empty(t, env.onLoad, "no load listener without worker support")
	assert.Empty(t, env.container.registered)
}

func TestInitialize_DefersUntilLoad(t *testing.T) {
	container := &fakeContainer{}
	env := &fakeEnv{supported: true, container: container}
	logger := &countingLogger{}

	NewRegistrar(logger, "").Initialize(context.Background(), env)

	assert.Empty(t, container.registered, "registration waits for the load event")
	require.Len(t, env.onLoad, 1)

	env.load()

	assert.Equal(t, []string{DefaultScriptPath}, container.registered)
	assert.Equal(t, 1, logger.infos)
	assert.Equal(t, 0, logger.errors)
}

func TestInitialize_RegistrationFailureOnlyLogged(t *testing.T) {
	container := &fakeContainer{err: errors.New("SecurityError: insecure origin")}
	env := &fakeEnv{supported: true, container: container}
	logger := &countingLogger{}

	NewRegistrar(logger, "").Initialize(context.Background(), env)
	assert.NotPanics(t, env.load)

	assert.Len(t, container.registered, 1)
	assert.Equal(t, 0, logger.infos)
	assert.Equal(t, 1, logger.errors)
}

func TestInitialize_CancelledContextStillRegisters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	container := &fakeContainer{}
	env := &fakeEnv{supported: true, container: container}

	NewRegistrar(nil, "").Initialize(ctx, env)
	cancel()
	env.load()

	assert.Len(t, container.registered, 1)
}

func TestDefaultScope(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		script     string
		wantScript string
		wantScope  string
	}{
		{
			name:       "root page",
			page:       "https://example.com/",
			script:     "./sw.js",
			wantScript: "https://example.com/sw.js",
			wantScope:  "https://example.com/",
		},
		{
			name:       "nested page",
			page:       "https://example.com/Lab8-Starter/index.html",
			script:     "./sw.js",
			wantScript: "https://example.com/Lab8-Starter/sw.js",
			wantScope:  "https://example.com/Lab8-Starter/",
		},
		{
			name:       "absolute script path",
			page:       "https://example.com/a/b/page",
			script:     "/workers/sw.js",
			wantScript: "https://example.com/workers/sw.js",
			wantScope:  "https://example.com/workers/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, scope, err := DefaultScope(tt.page, tt.script)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScript, script)
			assert.Equal(t, tt.wantScope, scope)
		})
	}
}

func TestDefaultScope_InvalidPageURL(t *testing.T) {
	_, _, err := DefaultScope("://bad", "./sw.js")
	assert.Error(t, err)
}
