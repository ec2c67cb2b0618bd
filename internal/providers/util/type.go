package util

import (
	"context"

	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "util"

// Type materializes the utilities provider. Targets carry no backend
// settings here; only the name feeds into tool naming.
type Type struct{}

func (t *Type) TypeName() string { return TypeName }

func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	p := NewProvider()

	defs := []tools.Definition{
		{
			Name:        tools.ToolName(TypeName, target, "current_time"),
			Description: "Return the current time, optionally in a named IANA zone.",
			InputSchema: tools.Schema(
				tools.Arg{Name: "zone", Type: "string", Description: "IANA zone name, e.g. Europe/Berlin; empty for UTC"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				zone, err := dispatch.OptionalString(args, "zone", "")
				if err != nil {
					return nil, err
				}
				info, err := p.CurrentTime(ctx, zone)
				if err != nil {
					return nil, err
				}
				return tools.OK(info), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "parse_duration"),
			Description: "Normalize a human duration string like 90m, 1.5h, 2d or 1w to seconds.",
			InputSchema: tools.Schema(
				tools.Arg{Name: "value", Type: "string", Required: true, Description: "Duration to parse"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				value, err := dispatch.RequireString(args, "value")
				if err != nil {
					return nil, err
				}
				d, err := p.ParseDuration(ctx, value)
				if err != nil {
					return nil, err
				}
				return tools.OK(map[string]interface{}{
					"seconds":    d.Seconds(),
					"normalized": d.String(),
				}), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
