// Package knowledge implements the knowledge capability: a local
// SQLite store of troubleshooting notes that survive agent sessions.
package knowledge
