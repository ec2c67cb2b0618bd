// Package loki implements the logs capability against the Loki HTTP API.
package loki
