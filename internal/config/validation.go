package config

import (
	"fmt"

	"scout/internal/tools"
)

var knownTransports = map[string]bool{
	TransportStreamableHTTP: true,
	TransportStdio:          true,
}

// Validate checks the structural invariants of a configuration: a
// known transport, named and typed targets, and no two targets that
// would materialize colliding tool names.
func Validate(config Config) error {
	if !knownTransports[config.Server.Transport] {
		return &ConfigurationError{
			ErrorType: "validation",
			Message:   fmt.Sprintf("unknown transport %q", config.Server.Transport),
		}
	}

	seen := make(map[string]string, len(config.Targets))
	for _, target := range config.Targets {
		if target.Name == "" {
			return validationError("", "target name is required")
		}
		if target.Type == "" {
			return validationError(target.Name, "target type is required")
		}

		// Tool names derive from the sanitized name, so two targets of
		// the same type that sanitize identically would collide.
		key := target.Type + "/" + tools.SanitizeName(target.Name)
		if prev, ok := seen[key]; ok {
			return validationError(target.Name,
				fmt.Sprintf("tool names collide with target %q: both sanitize to %s", prev, key))
		}
		seen[key] = target.Name
	}
	return nil
}
