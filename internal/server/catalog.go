package server

import (
	"fmt"

	"scout/internal/artifact"
	"scout/internal/config"
	"scout/internal/dispatch"
	"scout/internal/providers/cluster"
	"scout/internal/providers/github"
	"scout/internal/providers/jira"
	"scout/internal/providers/knowledge"
	"scout/internal/providers/loki"
	"scout/internal/providers/prometheus"
	"scout/internal/providers/redis"
	"scout/internal/providers/tempo"
	"scout/internal/providers/util"
	"scout/internal/registry"
	"scout/internal/tools"
	"scout/pkg/logging"
)

// Catalog is everything one session serves: the provider registry and
// the routing table over all materialized tools.
type Catalog struct {
	Registry *registry.Registry
	Table    *dispatch.Table
}

// ProviderTypes builds the type table keyed by the config "type" field.
func ProviderTypes(cfg config.ServerConfig) (map[string]tools.ProviderType, error) {
	var store artifact.Store
	if cfg.ArtifactDir != "" {
		dir, err := artifact.NewDir(cfg.ArtifactDir)
		if err != nil {
			return nil, err
		}
		store = dir
	}

	types := []tools.ProviderType{
		&redis.Type{},
		&cluster.Type{Timeout: cfg.Timeout, Artifacts: store},
		&prometheus.Type{Timeout: cfg.Timeout},
		&loki.Type{Timeout: cfg.Timeout},
		&jira.Type{Timeout: cfg.Timeout},
		&github.Type{Timeout: cfg.Timeout},
		&tempo.Type{Timeout: cfg.Timeout},
		&knowledge.Type{},
		&util.Type{},
	}

	table := make(map[string]tools.ProviderType, len(types))
	for _, t := range types {
		table[t.TypeName()] = t
	}
	return table, nil
}

// BuildCatalog materializes every configured target and assembles the
// registry and routing table. Materialization is side-effect free, so a
// successful build opens no backend connections.
func BuildCatalog(cfg config.Config) (*Catalog, error) {
	types, err := ProviderTypes(cfg.Server)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	var defs []tools.Definition
	for _, tc := range cfg.Targets {
		typ, ok := types[tc.Type]
		if !ok {
			return nil, fmt.Errorf("target %s: unknown provider type %q", tc.Name, tc.Type)
		}
		mat, err := typ.Materialize(tc.ToTarget())
		if err != nil {
			return nil, fmt.Errorf("materialize target %s: %w", tc.Name, err)
		}

		reg.Register(ProviderName(tc.Type, tc.Name), mat.Provider)
		defs = append(defs, mat.Tools...)
	}

	table, err := dispatch.NewTable(defs)
	if err != nil {
		reg.Close()
		return nil, err
	}

	logging.Info("Server", "catalog built: %d providers, %d tools", len(cfg.Targets), len(defs))
	return &Catalog{Registry: reg, Table: table}, nil
}

// ProviderName is the registry key for one configured target.
func ProviderName(typeName, targetName string) string {
	return typeName + "/" + tools.SanitizeName(targetName)
}
