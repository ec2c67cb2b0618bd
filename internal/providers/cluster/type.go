package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"scout/internal/artifact"
	"scout/internal/capability"
	"scout/internal/dispatch"
	"scout/internal/tools"

	"github.com/google/uuid"
)

// TypeName is the tool-name prefix for this provider type.
const TypeName = "cluster"

// Type materializes rebalance-inspection tools for cluster-admin APIs.
type Type struct {
	// Classifier overrides the default keyword sets when non-empty.
	Classifier ClassifierConfig

	// Timeout bounds every admin API call.
	Timeout time.Duration

	// Artifacts receives support packages; nil disables that tool.
	Artifacts artifact.Store
}

func (t *Type) TypeName() string { return TypeName }

// Materialize builds the provider and its tools for one target.
func (t *Type) Materialize(target tools.Target) (*tools.Materialized, error) {
	if target.URL == "" {
		return nil, fmt.Errorf("target %s: url is required for %s providers", target.Name, TypeName)
	}
	if _, err := url.ParseRequestURI(target.URL); err != nil {
		return nil, fmt.Errorf("target %s: invalid url: %w", target.Name, err)
	}

	p := NewProvider(target, newAdminFactory(target, t.Timeout), t.Classifier)

	ident := target.Describe()
	defs := []tools.Definition{
		{
			Name: tools.ToolName(TypeName, target, "rebalance_actions"),
			Description: "Classify cluster actions into active and recently completed data " +
				"rebalances, including generically named actions whose nature is only " +
				"visible in per-shard detail. " + ident,
			InputSchema: tools.Schema(
				tools.Arg{Name: "database", Type: "string", Description: "Restrict to one database, by numeric ID or name"},
				tools.Arg{Name: "include_recent", Type: "boolean", Description: "Include the recently-completed bucket", Default: true},
				tools.Arg{Name: "recent_window", Type: "string", Description: "Recency window as a duration", Default: "1h"},
			),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				query, err := buildRebalanceQuery(args)
				if err != nil {
					return nil, err
				}
				report, err := p.ListRebalanceActions(ctx, query)
				if err != nil {
					return nil, err
				}
				return tools.OK(report), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "cluster_info"),
			Description: "Fetch the raw cluster document from the admin API. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				info, err := p.InstanceInfo(ctx, nil)
				if err != nil {
					return nil, err
				}
				return tools.OK(info), nil
			},
		},
		{
			Name:        tools.ToolName(TypeName, target, "databases"),
			Description: "List managed databases with their numeric IDs. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				dbs, err := p.Databases(ctx)
				if err != nil {
					return nil, err
				}
				return tools.OK(dbs), nil
			},
		},
	}

	if t.Artifacts != nil {
		defs = append(defs, tools.Definition{
			Name: tools.ToolName(TypeName, target, "support_package"),
			Description: "Collect cluster document and action log into a diagnostic bundle " +
				"in artifact storage, returning the artifact ID. " + ident,
			InputSchema: tools.Schema(),
			Handler: func(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
				info, err := collectSupportPackage(ctx, p, t.Artifacts, target.Name)
				if err != nil {
					return nil, err
				}
				return tools.OK(info), nil
			},
		})
	}

	return &tools.Materialized{Provider: p, Tools: defs}, nil
}

// buildRebalanceQuery translates tool arguments into the capability
// query. include_recent=false disables the recent bucket entirely.
func buildRebalanceQuery(args map[string]interface{}) (q capability.RebalanceQuery, err error) {
	q.Database, err = dispatch.OptionalString(args, "database", "")
	if err != nil {
		return q, err
	}
	includeRecent, err := dispatch.OptionalBool(args, "include_recent", true)
	if err != nil {
		return q, err
	}
	if !includeRecent {
		return q, nil
	}
	q.RecentWindow, err = dispatch.OptionalDuration(args, "recent_window", time.Hour)
	return q, err
}

// collectSupportPackage gathers the cluster document and raw action log
// into one JSON bundle.
func collectSupportPackage(ctx context.Context, p *Provider, store artifact.Store, targetName string) (*artifact.Info, error) {
	clusterDoc, err := p.admin().ClusterInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect cluster info: %w", err)
	}
	actions, err := p.admin().ListActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect actions: %w", err)
	}

	bundle := map[string]interface{}{
		"target":    targetName,
		"collected": time.Now().UTC().Format(time.RFC3339),
		"cluster":   clusterDoc,
		"actions":   actions,
	}
	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode support package: %w", err)
	}

	id := uuid.NewString()
	name := fmt.Sprintf("support_%s.json", tools.SanitizeName(targetName))
	info, err := store.Upload(ctx, id, name, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("upload support package: %w", err)
	}
	return info, nil
}
