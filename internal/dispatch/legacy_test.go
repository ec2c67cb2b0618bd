package dispatch

import (
	"context"
	"testing"

	"scout/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyRouterResolvesMultiTokenOperations(t *testing.T) {
	var gotOp string
	router := NewLegacyRouter(
		[]string{"info", "cluster_info", "replication_info", "sample_keys"},
		func(ctx context.Context, operation string, args map[string]interface{}) (*tools.Result, error) {
			gotOp = operation
			return tools.OK(nil), nil
		},
	)

	tests := []struct {
		toolName string
		expected string
	}{
		// Last-token matching would resolve all three of these to
		// "info"; suffix matching over whole operation names must not.
		{"redis_prod-cache_cluster_info", "cluster_info"},
		{"redis_prod-cache_replication_info", "replication_info"},
		{"redis_prod-cache_info", "info"},
		{"redis_prod-cache_sample_keys", "sample_keys"},
	}
	for _, tt := range tests {
		t.Run(tt.toolName, func(t *testing.T) {
			_, err := router.Call(context.Background(), tt.toolName, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, gotOp)
		})
	}
}

func TestLegacyRouterUnknownOperation(t *testing.T) {
	router := NewLegacyRouter([]string{"ping"}, func(ctx context.Context, operation string, args map[string]interface{}) (*tools.Result, error) {
		return tools.OK(nil), nil
	})

	_, err := router.Call(context.Background(), "redis_prod_flush_all", nil)
	assert.True(t, IsToolNotFound(err))
}

func TestArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"query":   "up",
		"limit":   float64(25), // JSON numbers decode as float64
		"verbose": true,
		"window":  "15m",
	}

	q, err := RequireString(args, "query")
	require.NoError(t, err)
	assert.Equal(t, "up", q)

	_, err = RequireString(args, "missing")
	assert.True(t, IsArgumentError(err))

	limit, err := OptionalInt(args, "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	def, err := OptionalInt(args, "absent", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, def)

	v, err := OptionalBool(args, "verbose", false)
	require.NoError(t, err)
	assert.True(t, v)

	w, err := OptionalDuration(args, "window", 0)
	require.NoError(t, err)
	assert.Equal(t, "15m0s", w.String())

	secs, err := OptionalDuration(map[string]interface{}{"window": float64(90)}, "window", 0)
	require.NoError(t, err)
	assert.Equal(t, "1m30s", secs.String())

	_, err = OptionalInt(map[string]interface{}{"limit": "many"}, "limit", 0)
	assert.True(t, IsArgumentError(err))
}
