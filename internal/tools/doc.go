// Package tools defines tool materialization: the Definition type
// consumed by the dispatcher and MCP server, the Target identity tools
// are bound to, the ProviderType factory contract, and the naming
// scheme that keeps materialized tool names session-unique.
package tools
