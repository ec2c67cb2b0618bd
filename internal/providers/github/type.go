package github

import (
	"context"
	"fmt"
	"time"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "repo"

// Type materializes repositories providers from targets.
type Type struct {
	// Timeout applies to each backend request.
	Timeout time.Duration
}

func (t *Type) TypeName() string { return TypeName }

// Materialize validates target and builds the provider with its tool set.
// Each target serves exactly one repository, named by the "owner" and
// "repo" options.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.Options["owner"] == "" || target.Options["repo"] == "" {
		return nil, fmt.Errorf("target %s: owner and repo options are required for %s providers", target.Name, TypeName)
	}
	p := NewProvider(target, t.Timeout)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name:        tools.ToolName(TypeName, target, "search_code"),
			Description: "Search code in the repository. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Required: true, Description: "Code search terms, GitHub search syntax"},
				tools.Arg{Name: "limit", Type: "integer", Default: 30, Description: "Maximum matches to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.RequireString(args, "query")
				if err != nil {
					return nil, err
				}
				limit, err := dispatch.OptionalInt(args, "limit", 30)
				if err != nil {
					return nil, err
				}
				matches, err := p.SearchCode(ctx, query, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"matches": matches, "count": len(matches)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "file"),
			Description: "Fetch the contents of one file. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "path", Type: "string", Required: true, Description: "File path within the repository"},
				tools.Arg{Name: "ref", Type: "string", Description: "Branch, tag or commit SHA; empty for the default branch"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				path, err := dispatch.RequireString(args, "path")
				if err != nil {
					return nil, err
				}
				ref, err := dispatch.OptionalString(args, "ref", "")
				if err != nil {
					return nil, err
				}
				content, err := p.GetFileContents(ctx, path, ref)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"path": path, "content": content}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "recent_commits"),
			Description: "List the most recent commits on the default branch. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "limit", Type: "integer", Default: 20, Description: "Maximum commits to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				limit, err := dispatch.OptionalInt(args, "limit", 20)
				if err != nil {
					return nil, err
				}
				commits, err := p.ListRecentCommits(ctx, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"commits": commits, "count": len(commits)}), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
