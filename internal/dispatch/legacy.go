package dispatch

import (
	"context"
	"sort"
	"strings"

	"scout/internal/tools"
)

// LegacyHandler is the single shared entry point exposed by a legacy
// provider. The router recovers the operation name from the tool name
// and passes it through.
type LegacyHandler func(ctx context.Context, operation string, args map[string]interface{}) (*tools.Result, error)

// LegacyRouter adapts providers that predate one-handler-per-tool
// dispatch. It recovers the operation by matching trailing segments of
// the tool name against the known operation set.
//
// This is strictly less robust than closure-table dispatch and exists
// only as a compatibility shim: it cannot detect tools the provider
// never declared, and it depends on operation names not colliding with
// sanitized target names.
type LegacyRouter struct {
	operations []string // sorted longest-first so the most specific suffix wins
	handler    LegacyHandler
}

// NewLegacyRouter builds a router over the given known operations.
func NewLegacyRouter(operations []string, handler LegacyHandler) *LegacyRouter {
	ops := make([]string, len(operations))
	copy(ops, operations)
	// Longest first: "_replication_info" must be tried before a
	// shorter operation whose name is its suffix. Matching the last
	// underscore token alone is ambiguous for multi-token operations
	// ("cluster_info" and "replication_info" both end in "info"), so
	// the router matches whole operation names as suffixes instead.
	sort.Slice(ops, func(i, j int) bool { return len(ops[i]) > len(ops[j]) })
	return &LegacyRouter{operations: ops, handler: handler}
}

// Call resolves the operation from toolName and invokes the shared
// entry point under the same external contract as Table.Call.
func (r *LegacyRouter) Call(ctx context.Context, toolName string, args map[string]interface{}) (*tools.Result, error) {
	op, ok := r.resolveOperation(toolName)
	if !ok {
		return nil, &ToolNotFoundError{Name: toolName}
	}
	return invoke(ctx, toolName, func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
		return r.handler(ctx, op, args)
	}, args)
}

// resolveOperation scans the known operations for one that terminates
// the tool name.
func (r *LegacyRouter) resolveOperation(toolName string) (string, bool) {
	for _, op := range r.operations {
		if strings.HasSuffix(toolName, "_"+op) || toolName == op {
			return op, true
		}
	}
	return "", false
}
