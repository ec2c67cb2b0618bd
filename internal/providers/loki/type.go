package loki

import (
	"context"
	"fmt"
	"time"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "logs"

// Type materializes logs providers from targets.
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
			Description: "Run a LogQL query over a recent time window, newest entries first. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Required: true, Description: "LogQL expression, e.g. {job=\"api\"} |= \"error\""},
				tools.Arg{Name: "since", Type: "string", Default: "1h", Description: "Window length ending now, e.g. 15m or 6h"},
				tools.Arg{Name: "limit", Type: "integer", Default: 100, Description: "Maximum entries to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.RequireString(args, "query")
				if err != nil {
					return nil, err
				}
				since, err := dispatch.OptionalDuration(args, "since", time.Hour)
				if err != nil {
					return nil, err
				}
				limit, err := dispatch.OptionalInt(args, "limit", 100)
				if err != nil {
					return nil, err
				}
				end := time.Now()
				entries, err := p.SearchLogs(ctx, query, end.Add(-since), end, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"entries": entries, "count": len(entries)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "groups"),
			Description: "List the log streams available for search. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				groups, err := p.ListLogGroups(ctx)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"groups": groups, "count": len(groups)}), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
