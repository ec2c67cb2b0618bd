package tempo

import (
	"context"
	"fmt"
	"time"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "traces"

// Type materializes traces providers from targets.
type Type struct {
	// Timeout applies to each backend request.
	Timeout time.Duration
}

func (t *Type) TypeName() string { return TypeName }

// Materialize validates target and builds the provider with its tool set.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.URL == "" {
		return nil, fmt.Errorf("target %s: url is required for %s providers", target.Name, TypeName)
	}
	p := NewProvider(target, t.Timeout)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name:        tools.ToolName(TypeName, target, "search"),
			Description: "Search recent traces by service, optionally filtered by minimum duration. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "service", Type: "string", Description: "Service name to filter by; empty for all services"},
				tools.Arg{Name: "min_duration", Type: "string", Description: "Only traces at least this long, e.g. 500ms or 2s"},
				tools.Arg{Name: "limit", Type: "integer", Default: 20, Description: "Maximum traces to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				service, err := dispatch.OptionalString(args, "service", "")
				if err != nil {
					return nil, err
				}
				minDuration, err := dispatch.OptionalDuration(args, "min_duration", 0)
				if err != nil {
					return nil, err
				}
				limit, err := dispatch.OptionalInt(args, "limit", 20)
				if err != nil {
					return nil, err
				}
				traces, err := p.SearchTraces(ctx, service, minDuration, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"traces": traces, "count": len(traces)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "get"),
			Description: "Fetch one trace document by ID. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "trace_id", Type: "string", Required: true, Description: "Hex trace ID"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				traceID, err := dispatch.RequireString(args, "trace_id")
				if err != nil {
					return nil, err
				}
				doc, err := p.GetTrace(ctx, traceID)
				if err != nil {
					return nil, err
				}
				return tools.OK(doc), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
