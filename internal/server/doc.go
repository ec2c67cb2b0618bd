// Package server assembles the provider catalog from configuration and
// exposes the materialized tools over MCP transports.
package server
