package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"scout/internal/capability"
	"scout/internal/tools"
)

// ClientFactory builds the admin client for a provider. Injected so
// tests run against fakes; the real factory closes over the target's
// URL and credentials.
type ClientFactory func() AdminClient

// Provider is the diagnostics provider for one cluster-admin API. The
// client is created lazily on first use.
type Provider struct {
	target     tools.Target
	factory    ClientFactory
	classifier ClassifierConfig

	mu     sync.Mutex
	client AdminClient
}

// NewProvider builds a provider for target. Construction performs no I/O.
func NewProvider(target tools.Target, factory ClientFactory, classifier ClassifierConfig) *Provider {
	return &Provider{target: target, factory: factory, classifier: classifier}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Diagnostics}
}

func (p *Provider) admin() AdminClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		p.client = p.factory()
	}
	return p.client
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	if _, err := p.admin().ClusterInfo(ctx); err != nil {
		return capability.Unhealthy(err)
	}
	return capability.Healthy()
}

// Close is a no-op: the admin client is a stateless HTTP client.
func (p *Provider) Close() error { return nil }

// SampleKeys is a wire-protocol concern served by instance providers,
// not the admin API.
func (p *Provider) SampleKeys(ctx context.Context, requested int) (*capability.KeySampleResult, error) {
	return nil, fmt.Errorf("key sampling: %w", capability.ErrUnsupported)
}

// ListRebalanceActions classifies the cluster's action log.
func (p *Provider) ListRebalanceActions(ctx context.Context, query capability.RebalanceQuery) (*capability.RebalanceReport, error) {
	return NewClassifier(p.admin(), p.classifier).Classify(ctx, query)
}

// InstanceInfo returns the cluster document rendered as JSON under the
// "cluster" section key.
func (p *Provider) InstanceInfo(ctx context.Context, sections []string) (map[string]string, error) {
	info, err := p.admin().ClusterInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("cluster info: %w", err)
	}
	rendered, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render cluster info: %w", err)
	}
	return map[string]string{"cluster": string(rendered)}, nil
}

// Databases lists the managed databases.
func (p *Provider) Databases(ctx context.Context) ([]Database, error) {
	return p.admin().ListDatabases(ctx)
}

// newAdminFactory is the production client factory for a target.
func newAdminFactory(target tools.Target, timeout time.Duration) ClientFactory {
	insecure := target.Options["insecure_tls"] == "true"
	return func() AdminClient {
		return NewAdminClient(target.URL, target.Credentials.Username, target.Credentials.Password, timeout, insecure)
	}
}
