package tools

import "scout/internal/capability"

// Credentials are optional admin credentials for a target backend.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Target identifies one monitored system. It is external, read-only
// input: the name must stay stable for a session, since materialized
// tool names derive from it.
type Target struct {
	// Name is the short configured display name of the target.
	Name string

	// Environment tags the deployment (prod, staging, ...). Used only
	// in tool descriptions so the agent can tell near-identical
	// targets apart.
	Environment string

	// URL is the backend endpoint for HTTP backends.
	URL string

	// Addr is the host:port for wire-protocol backends.
	Addr string

	// Credentials are optional admin credentials.
	Credentials Credentials

	// Options carries provider-specific settings already validated by
	// the config layer.
	Options map[string]string
}

// Describe renders the identity suffix embedded in every materialized
// tool description.
func (t Target) Describe() string {
	s := "Target: " + t.Name
	if t.Environment != "" {
		s += " (" + t.Environment + ")"
	}
	switch {
	case t.URL != "":
		s += " at " + t.URL
	case t.Addr != "":
		s += " at " + t.Addr
	}
	return s
}

// Materialized bundles the provider instance bound to one target with
// the tools that invoke it.
type Materialized struct {
	Provider capability.Provider
	Tools    []Definition
}

// ProviderType is a deployment-level factory. Given one target
// identity it materializes uniquely named tools bound to that identity.
// Materialization must be free of side effects: connections open lazily
// on first invocation, so unused tools never open connections.
type ProviderType interface {
	// TypeName is the stable name used as the tool name prefix.
	TypeName() string

	// Materialize produces the provider and tools for one target.
	Materialize(target Target) (*Materialized, error)
}
