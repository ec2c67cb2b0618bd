package dispatch

import (
	"context"
	"fmt"
	"sort"

	"scout/internal/tools"
	"scout/pkg/logging"
)

// Table is the per-session routing table. It is built once from the
// materialized tool definitions and is read-only during dispatch, so
// lookups need no locking.
type Table struct {
	entries map[string]tools.Definition
}

// NewTable builds a routing table from definitions. Duplicate names are
// a configuration fault: tool names must be session-unique for
// name-based dispatch to be deterministic.
func NewTable(defs []tools.Definition) (*Table, error) {
	entries := make(map[string]tools.Definition, len(defs))
	for _, def := range defs {
		if _, exists := entries[def.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name %s in routing table", def.Name)
		}
		entries[def.Name] = def
	}
	return &Table{entries: entries}, nil
}

// Resolve returns the definition registered under name.
func (t *Table) Resolve(name string) (tools.Definition, bool) {
	def, ok := t.entries[name]
	return def, ok
}

// Names returns all routable tool names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns all definitions sorted by name.
func (t *Table) Definitions() []tools.Definition {
	defs := make([]tools.Definition, 0, len(t.entries))
	for _, name := range t.Names() {
		defs = append(defs, t.entries[name])
	}
	return defs
}

// Call resolves name and invokes the tool. Unknown names return a
// ToolNotFoundError. Argument errors from the handler propagate
// unchanged; every other handler failure, panics included, is folded
// into an error-status result so one broken provider cannot take down
// a multi-tool exchange.
func (t *Table) Call(ctx context.Context, name string, args map[string]interface{}) (*tools.Result, error) {
	def, ok := t.entries[name]
	if !ok {
		return nil, &ToolNotFoundError{Name: name}
	}
	return invoke(ctx, name, def.Handler, args)
}

// invoke runs a handler with the dispatch boundary's error conversion.
func invoke(ctx context.Context, name string, handler tools.Handler, args map[string]interface{}) (result *tools.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Dispatch", nil, "tool %s panicked: %v", name, rec)
			result = tools.Errorf("tool %s panicked: %v", name, rec)
			err = nil
		}
	}()

	result, err = handler(ctx, args)
	if err != nil {
		if IsArgumentError(err) {
			return nil, err
		}
		logging.Error("Dispatch", err, "tool %s failed", name)
		return tools.Errorf("%v", err), nil
	}
	return result, nil
}
