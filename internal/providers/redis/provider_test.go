package redis

import (
	"context"
	"errors"
	"testing"

	"scout/internal/capability"
	"scout/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderConnectsLazily(t *testing.T) {
	dials := 0
	conn := &fakeConn{doReply: "PONG"}
	p := NewProvider(tools.Target{Name: "cache-a"}, func(ctx context.Context) (Conn, error) {
		dials++
		return conn, nil
	}, DefaultSamplerConfig())

	assert.Equal(t, 0, dials, "construction must not dial")

	status := p.CheckHealth(context.Background())
	assert.Equal(t, capability.StatusOK, status.Status)
	assert.Equal(t, 1, dials)

	// Second call reuses the open connection.
	p.CheckHealth(context.Background())
	assert.Equal(t, 1, dials)

	require.NoError(t, p.Close())
	assert.True(t, conn.closed)
}

func TestProviderHealthDialFailure(t *testing.T) {
	p := NewProvider(tools.Target{Name: "cache-a"}, func(ctx context.Context) (Conn, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, DefaultSamplerConfig())

	status := p.CheckHealth(context.Background())
	assert.Equal(t, capability.StatusError, status.Status)
	assert.Contains(t, status.Error, "connection refused")
}

func TestProviderRebalanceUnsupported(t *testing.T) {
	p := NewProvider(tools.Target{Name: "cache-a"}, func(ctx context.Context) (Conn, error) {
		return &fakeConn{}, nil
	}, DefaultSamplerConfig())

	_, err := p.ListRebalanceActions(context.Background(), capability.RebalanceQuery{})
	assert.True(t, capability.IsUnsupported(err))
}

func TestMaterializeToolNames(t *testing.T) {
	typ := &Type{}
	m, err := typ.Materialize(tools.Target{Name: "prod cache", Addr: "10.0.0.1:6379"})
	require.NoError(t, err)

	var names []string
	for _, def := range m.Tools {
		names = append(names, def.Name)
		assert.Contains(t, def.Description, "prod cache", "description embeds target identity")
		assert.Equal(t, "object", def.InputSchema.Type)
	}
	assert.ElementsMatch(t, []string{
		"redis_prod_cache_sample_keys",
		"redis_prod_cache_instance_info",
		"redis_prod_cache_cluster_info",
		"redis_prod_cache_replication_info",
	}, names)

	assert.Equal(t, []capability.Capability{capability.Diagnostics}, m.Provider.Capabilities())
}

func TestMaterializeRequiresAddr(t *testing.T) {
	typ := &Type{}
	_, err := typ.Materialize(tools.Target{Name: "cache-a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr is required")
}
