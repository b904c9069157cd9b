package physics

import "fmt"

// ConfigError reports a physics object or joint definition the engine
// cannot act on: missing vehicle callbacks, malformed compound shape data,
// missing tire definitions. It is fatal to the operation, not the process.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("physics: bad configuration for %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
