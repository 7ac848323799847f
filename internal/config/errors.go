package config

import "fmt"

// ConfigurationError reports a missing or unusable configuration value. It
// is raised synchronously at client construction and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
