// Package logging provides a structured logging system for scout with
// leveled output and subsystem tagging.
//
// The package is a thin layer over Go's standard slog package. All log
// entries carry a subsystem identifier ("Registry", "Dispatch",
// "Sampler", ...) so that output from the different provider layers can
// be filtered and correlated.
//
// Usage:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("Registry", "registered provider %s", name)
//	logging.Error("Dispatch", err, "tool %s failed", toolName)
//
// Output always goes to the writer given to Init. Commands that serve
// MCP over stdio must log to stderr to keep the protocol stream clean.
package logging
