// ABOUTME: Feature flag management for toggling optional page and API behaviour
// ABOUTME: Provides interface-based feature toggling with environment and static backends

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// ServiceWorkerEnabled lets rendered pages register the offline worker
	ServiceWorkerEnabled FeatureFlag = "service_worker"

	// RateLimitEnabled enables per-client rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit"

	// CacheClearEnabled exposes the cache clearing endpoint
	CacheClearEnabled FeatureFlag = "cache_clear"
)

// All lists every defined flag
var All = []FeatureFlag{ServiceWorkerEnabled, RateLimitEnabled, CacheClearEnabled}

// Defaults holds the state of each flag when nothing overrides it
var Defaults = map[FeatureFlag]bool{
	ServiceWorkerEnabled: true,
	RateLimitEnabled:     true,
	CacheClearEnabled:    true,
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables.
// A flag whose variable is unset takes its value from the manager defaults.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	defaults  map[FeatureFlag]bool
	prefix    string
	lookup    func(string) (string, bool)
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string, defaults map[FeatureFlag]bool) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	d := make(map[FeatureFlag]bool, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		defaults:  d,
		prefix:    prefix,
		lookup:    os.LookupEnv,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if enabled, ok := m.overrides[flag]; ok {
		return enabled
	}

	envKey := m.prefix + strings.ToUpper(string(flag))
	value, ok := m.lookup(envKey)
	if !ok || value == "" {
		return m.defaults[flag]
	}

	return parseBool(value)
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "enabled", "on":
		return true
	}
	return false
}

// SetEnabled sets a feature flag's state (mainly for testing)
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(All))
	for _, f := range All {
		flags[f] = m.IsEnabled(ctx, f)
	}
	return flags
}

// StaticManager implements Manager with static configuration
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{
		flags: flags,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool)
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}

// ContextKey for storing feature flags in context
type contextKey struct{}

// WithManager adds a feature flag manager to the context
func WithManager(ctx context.Context, manager Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, manager)
}

// FromContext retrieves the feature flag manager from context
func FromContext(ctx context.Context) Manager {
	if manager, ok := ctx.Value(contextKey{}).(Manager); ok {
		return manager
	}
	return NewStaticManager(Defaults)
}

// IsEnabled is a convenience function to check if a feature is enabled
func IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	return FromContext(ctx).IsEnabled(ctx, flag)
}
