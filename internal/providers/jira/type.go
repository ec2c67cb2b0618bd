package jira

import (
	"context"
	"fmt"
	"time"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "tickets"

// Type materializes tickets providers from targets.
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
			Description: "Search issues with a JQL query. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Required: true, Description: "JQL, e.g. project = OPS AND status != Done"},
				tools.Arg{Name: "limit", Type: "integer", Default: 25, Description: "Maximum issues to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.RequireString(args, "query")
				if err != nil {
					return nil, err
				}
				limit, err := dispatch.OptionalInt(args, "limit", 25)
				if err != nil {
					return nil, err
				}
				issues, err := p.SearchIssues(ctx, query, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"issues": issues, "count": len(issues)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "get"),
			Description: "Fetch one issue by key, e.g. OPS-1234. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "key", Type: "string", Required: true, Description: "Issue key"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				key, err := dispatch.RequireString(args, "key")
				if err != nil {
					return nil, err
				}
				issue, err := p.GetIssue(ctx, key)
				if err != nil {
					return nil, err
				}
				return tools.OK(issue), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
