package prometheus

import (
	"context"
	"fmt"
	"time"

	"scout/internal/capability"
	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "metrics"

// Type materializes metrics providers from targets.
type Type struct {
	// Timeout applies to each backend request.
	Timeout time.Duration
}

func (t *Type) TypeName() string { return TypeName }

// Materialize validates target and builds the provider with its tool set.
// The target option "range_queries: false" marks a backend that only
// serves instant queries.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.URL == "" {
		return nil, fmt.Errorf("target %s: url is required for %s providers", target.Name, TypeName)
	}
	rangeQueries := target.Options["range_queries"] != "false"
	p := NewProvider(target, t.Timeout, rangeQueries)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name:        tools.ToolName(TypeName, target, "list_metrics"),
			Description: "List the metric names known to the backend. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				names, err := p.ListMetrics(ctx)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"metrics": names, "count": len(names)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "query"),
			Description: "Evaluate a PromQL expression at the current instant. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Required: true, Description: "PromQL expression"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.RequireString(args, "query")
				if err != nil {
					return nil, err
				}
				values, err := p.CurrentValue(ctx, query)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"result": values}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "query_range"),
			Description: "Evaluate a PromQL expression over a time range ending now. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Required: true, Description: "PromQL expression"},
				tools.Arg{Name: "duration", Type: "string", Default: "1h", Description: "Length of the range, e.g. 30m or 2h"},
				tools.Arg{Name: "step", Type: "string", Default: "1m", Description: "Resolution step, e.g. 15s or 5m"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.RequireString(args, "query")
				if err != nil {
					return nil, err
				}
				window, err := dispatch.OptionalDuration(args, "duration", time.Hour)
				if err != nil {
					return nil, err
				}
				step, err := dispatch.OptionalDuration(args, "step", time.Minute)
				if err != nil {
					return nil, err
				}
				end := time.Now()
				series, err := p.QueryRange(ctx, query, end.Add(-window), end, step)
				if err != nil {
					if capability.IsUnsupported(err) {
						return tools.Unsupported("range queries"), nil
					}
					return nil, err
				}
				return tools.OK(map[string]interface{}{"series": series}), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
