// Package cluster implements the diagnostics provider for the
// cluster-admin REST API: heuristic rebalance-action classification,
// database listing, cluster documents, and support packages.
//
// The classifier encodes fuzzy domain knowledge as an ordered rule
// list. The keyword and ambiguous-label sets are reverse-engineered
// from observed backend behavior and therefore configurable rather
// than hard-coded.
package cluster
