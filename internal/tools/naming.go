package tools

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// SanitizeName maps an arbitrary target display name into the tool-name
// alphabet [A-Za-z0-9_-]. Characters outside the alphabet become '_',
// leading and trailing '_'/'-' are stripped, and an empty result falls
// back to the literal "instance". The function is total and idempotent.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "instance"
	}
	return out
}

// ToolName builds the session-unique name for one materialized tool:
// {provider_type}_{sanitized_target_name}_{operation}.
func ToolName(providerType string, target Target, operation string) string {
	return providerType + "_" + SanitizeName(target.Name) + "_" + operation
}

// InstanceFingerprint derives a 6-hex-digit fingerprint for an opaque
// live provider instance that has no short configured name. It
// disambiguates multiple live instances of the same logical provider
// within one process session; collision-resistant in practice, not
// cryptographically guaranteed.
func InstanceFingerprint(name string, instance interface{}) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s/%p", name, instance)
	return fmt.Sprintf("%06x", h.Sum32()&0xffffff)
}

// FingerprintToolName builds a tool name for an opaque live instance:
// {provider_name}_{6hexdigits}_{operation}.
func FingerprintToolName(providerName string, instance interface{}, operation string) string {
	return providerName + "_" + InstanceFingerprint(providerName, instance) + "_" + operation
}
