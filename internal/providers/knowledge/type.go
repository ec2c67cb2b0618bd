package knowledge

import (
	"context"
	"fmt"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "knowledge"

// Type materializes knowledge providers from targets.
type Type struct{}

func (t *Type) TypeName() string { return TypeName }

// Materialize validates target and builds the provider with its tool set.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.Options["path"] == "" {
		return nil, fmt.Errorf("target %s: path option is required for %s providers", target.Name, TypeName)
	}
	p := NewProvider(target)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name:        tools.ToolName(TypeName, target, "search"),
			Description: "Search saved troubleshooting notes by topic or body, newest first. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "query", Type: "string", Description: "Substring to match; empty returns the newest notes"},
				tools.Arg{Name: "limit", Type: "integer", Default: 20, Description: "Maximum notes to return"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := dispatch.OptionalString(args, "query", "")
				if err != nil {
					return nil, err
				}
				limit, err := dispatch.OptionalInt(args, "limit", 20)
				if err != nil {
					return nil, err
				}
				notes, err := p.SearchNotes(ctx, query, limit)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{"notes": notes, "count": len(notes)}), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "save"),
			Description: "Save a troubleshooting note for future sessions. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "topic", Type: "string", Required: true, Description: "Short topic, e.g. replica-lag"},
				tools.Arg{Name: "body", Type: "string", Required: true, Description: "Note text"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				topic, err := dispatch.RequireString(args, "topic")
				if err != nil {
					return nil, err
				}
				body, err := dispatch.RequireString(args, "body")
				if err != nil {
					return nil, err
				}
				note, err := p.SaveNote(ctx, topic, body)
				if err != nil {
					return nil, err
				}
				return tools.OK(note), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
