// Package dispatch resolves (tool name, arguments) calls against the
// per-session routing table.
//
// The preferred strategy is a direct map lookup into handlers created
// at materialization time (Table). A suffix-matching LegacyRouter is
// kept for providers that expose one shared entry point; both share the
// same external contract.
//
// Error policy at the dispatch boundary: unknown names return
// ToolNotFoundError, invalid arguments return ArgumentError (and
// propagate, since they are programmer errors), and everything else a
// handler does wrong, panics included, becomes an error-status Result.
package dispatch
