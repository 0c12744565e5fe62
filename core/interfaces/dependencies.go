// ABOUTME: Dependencies container injected into the recipe services
// ABOUTME: Any field may be nil; services degrade to "not configured" errors or silence

package interfaces

// Dependencies holds the external collaborators of the core packages
type Dependencies struct {
	// Cache persists the serialized recipe collection
	Cache Cache

	// HTTPClient retrieves source documents
	HTTPClient HTTPClient

	// Logger receives structured log entries
	Logger Logger
}

// NopLogger discards every entry. Used when no Logger is injected.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// LoggerOrNop returns l, or a NopLogger when l is nil.
func LoggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
