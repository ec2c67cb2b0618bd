// Package config loads and validates the scout configuration file:
// the server exposure settings and the list of monitored targets.
package config
