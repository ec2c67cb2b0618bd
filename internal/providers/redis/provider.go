package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"scout/internal/capability"
	"scout/internal/tools"
)

// Dialer opens the wire connection for a provider. Injected so tests
// run against fakes.
type Dialer func(ctx context.Context) (Conn, error)

// Provider is the diagnostics provider for one key-value instance. The
// connection opens lazily on first use and is owned exclusively by this
// provider; sequential calls within one invocation run in issuance
// order, which the sampler's draw-then-classify rounds rely on.
type Provider struct {
	target  tools.Target
	dial    Dialer
	sampler SamplerConfig

	mu   sync.Mutex
	conn Conn
}

// NewProvider builds a provider for target. Construction performs no I/O.
func NewProvider(target tools.Target, dial Dialer, sampler SamplerConfig) *Provider {
	return &Provider{target: target, dial: dial, sampler: sampler}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Diagnostics}
}

// connect returns the lazily opened connection.
func (p *Provider) connect(ctx context.Context) (Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return p.conn, nil
	}
	conn, err := p.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", p.target.Name, err)
	}
	p.conn = conn
	return conn, nil
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	conn, err := p.connect(ctx)
	if err != nil {
		return capability.Unhealthy(err)
	}
	reply, err := conn.Do(ctx, "PING")
	if err != nil {
		return capability.Unhealthy(err)
	}
	if reply != "PONG" {
		return capability.Unhealthy(fmt.Errorf("unexpected ping reply %q", reply))
	}
	return capability.Healthy()
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

// SampleKeys implements the bounded randomized key sampler.
func (p *Provider) SampleKeys(ctx context.Context, requested int) (*capability.KeySampleResult, error) {
	conn, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	return NewSampler(conn, p.sampler).Sample(ctx, requested)
}

// ListRebalanceActions is a cluster-admin concern; a single instance
// has no action log to classify.
func (p *Provider) ListRebalanceActions(ctx context.Context, query capability.RebalanceQuery) (*capability.RebalanceReport, error) {
	return nil, fmt.Errorf("rebalance actions: %w", capability.ErrUnsupported)
}

// InstanceInfo fetches INFO sections keyed by section name. An empty
// section list fetches the default INFO output under the "default" key.
func (p *Provider) InstanceInfo(ctx context.Context, sections []string) (map[string]string, error) {
	conn, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		info, err := conn.Do(ctx, "INFO")
		if err != nil {
			return nil, fmt.Errorf("info: %w", err)
		}
		return map[string]string{"default": info}, nil
	}

	out := make(map[string]string, len(sections))
	for _, section := range sections {
		section = strings.ToLower(strings.TrimSpace(section))
		if section == "" {
			continue
		}
		info, err := conn.Do(ctx, "INFO", section)
		if err != nil {
			return nil, fmt.Errorf("info %s: %w", section, err)
		}
		out[section] = info
	}
	return out, nil
}

// ClusterInfo returns the CLUSTER INFO text, or an unsupported error on
// non-clustered instances.
func (p *Provider) ClusterInfo(ctx context.Context) (string, error) {
	conn, err := p.connect(ctx)
	if err != nil {
		return "", err
	}
	reply, err := conn.Do(ctx, "CLUSTER", "INFO")
	if err != nil {
		if strings.Contains(err.Error(), "cluster support disabled") {
			return "", fmt.Errorf("cluster info: %w", capability.ErrUnsupported)
		}
		return "", fmt.Errorf("cluster info: %w", err)
	}
	return reply, nil
}

// ReplicationInfo returns the replication section of INFO.
func (p *Provider) ReplicationInfo(ctx context.Context) (string, error) {
	info, err := p.InstanceInfo(ctx, []string{"replication"})
	if err != nil {
		return "", err
	}
	return info["replication"], nil
}
