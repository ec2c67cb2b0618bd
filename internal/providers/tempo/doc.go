// Package tempo implements the traces capability against the Tempo HTTP API.
package tempo
