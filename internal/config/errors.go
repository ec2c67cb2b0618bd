package config

import "fmt"

// ConfigurationError is a structured error from configuration loading
// or validation, carrying enough context to point at the offending
// target declaration.
type ConfigurationError struct {
	FilePath  string // Full path to the file that caused the error
	Target    string // Name of the offending target, if any
	ErrorType string // parse, validation or io
	Message   string // Human-readable error message
}

func (ce *ConfigurationError) Error() string {
	if ce.Target != "" {
		return fmt.Sprintf("%s: target %q: %s", ce.ErrorType, ce.Target, ce.Message)
	}
	if ce.FilePath != "" {
		return fmt.Sprintf("%s: %s: %s", ce.ErrorType, ce.FilePath, ce.Message)
	}
	return fmt.Sprintf("%s: %s", ce.ErrorType, ce.Message)
}

func validationError(target, message string) *ConfigurationError {
	return &ConfigurationError{Target: target, ErrorType: "validation", Message: message}
}
