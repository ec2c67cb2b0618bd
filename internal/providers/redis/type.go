package redis

import (
	"context"
	"fmt"
	"strings"

	"scout/internal/capability"
	"scout/internal/dispatch"
	"scout/internal/tools"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "redis"

// Type materializes diagnostics tools for key-value instances.
type Type struct {
	// Sampler overrides the default sampling bounds when non-zero.
	Sampler SamplerConfig
}

func (t *Type) TypeName() string { return TypeName }

// Materialize builds the provider and its tools for one target. No
// connection is opened here; each tool dials lazily on first use.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.Addr == "" {
		return nil, fmt.Errorf("target %s: addr is required for %s providers", target.Name, TypeName)
	}

	cfg := t.Sampler
	if cfg.MaxCount == 0 {
		cfg = DefaultSamplerConfig()
	}

	addr := target.Addr
	password := target.Credentials.Password
	p := NewProvider(target, func(ctx context.Context) (Conn, error) {
		return Dial(ctx, addr, password)
	}, cfg)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name: tools.ToolName(TypeName, target, "sample_keys"),
			Description: "Collect a deduplicated random sample of keys with their types, " +
				"bounded by count and a wall-clock budget. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "count", Type: "integer", Description: "Number of keys to sample", Default: 50},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				count, err := dispatch.OptionalInt(args, "count", 50)
				if err != nil {
					return nil, err
				}
				result, err := p.SampleKeys(ctx, count)
				if err != nil {
					return nil, err
				}
				return tools.OK(result), nil
			},
		},
		{
			Name: tools.ToolName(TypeName, target, "instance_info"),
			Description: "Fetch raw INFO sections from the instance (memory, clients, stats, ...). " +
				ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "sections", Type: "string", Description: "Comma-separated INFO sections; empty for the default set"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				raw, err := dispatch.OptionalString(args, "sections", "")
				if err != nil {
					return nil, err
				}
				var sections []string
				for _, s := range strings.Split(raw, ",") {
					if s = strings.TrimSpace(s); s != "" {
						sections = append(sections, s)
					}
				}
				info, err := p.InstanceInfo(ctx, sections)
				if err != nil {
					return nil, err
				}
				return tools.OK(info), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "cluster_info"),
			Description: "Fetch cluster state and slot coverage summary. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				info, err := p.ClusterInfo(ctx)
				if err != nil {
					if capability.IsUnsupported(err) {
						return tools.Unsupported("cluster info"), nil
					}
					return nil, err
				}
				return tools.OK(info), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "replication_info"),
			Description: "Fetch replication role, replica state and offsets. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				info, err := p.ReplicationInfo(ctx)
				if err != nil {
					return nil, err
				}
				return tools.OK(info), nil
			},
		},
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}
