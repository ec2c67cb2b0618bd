// Package redis implements the diagnostics provider for key-value
// instances speaking the RESP wire protocol: bounded randomized key
// sampling, raw INFO access, and cluster/replication summaries.
//
// The wire protocol is treated as an opaque collaborator behind the
// narrow Conn interface; only the commands the provider actually issues
// are supported.
package redis
