package dispatch

import (
	"fmt"
	"time"
)

// Argument extraction helpers shared by all tool handlers. MCP
// arguments arrive as map[string]interface{} decoded from JSON, so
// numbers are float64 unless the client sent an integer literal.

// RequireString returns the named string argument or an ArgumentError.
func RequireString(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", NewMissingArgumentError(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgumentError{Argument: name, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	if s == "" {
		return "", NewMissingArgumentError(name)
	}
	return s, nil
}

// OptionalString returns the named string argument or def when absent.
func OptionalString(args map[string]interface{}, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgumentError{Argument: name, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// OptionalInt returns the named integer argument or def when absent.
func OptionalInt(args map[string]interface{}, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, &ArgumentError{Argument: name, Reason: fmt.Sprintf("expected number, got %T", v)}
	}
}

// OptionalBool returns the named boolean argument or def when absent.
func OptionalBool(args map[string]interface{}, name string, def bool) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ArgumentError{Argument: name, Reason: fmt.Sprintf("expected boolean, got %T", v)}
	}
	return b, nil
}

// OptionalDuration returns the named duration argument or def when
// absent. Accepts Go duration strings ("15m") or a number of seconds.
func OptionalDuration(args map[string]interface{}, name string, def time.Duration) (time.Duration, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ArgumentError{Argument: name, Reason: fmt.Sprintf("invalid duration %q", d)}
		}
		return parsed, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case int:
		return time.Duration(d) * time.Second, nil
	default:
		return 0, &ArgumentError{Argument: name, Reason: fmt.Sprintf("expected duration string or seconds, got %T", v)}
	}
}
