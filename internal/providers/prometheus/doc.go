// Package prometheus implements the metrics capability against any
// Prometheus-compatible HTTP API.
package prometheus
