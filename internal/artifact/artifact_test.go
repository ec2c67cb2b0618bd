package artifact

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirRoundTrip(t *testing.T) {
	store, err := NewDir(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	info, err := store.Upload(ctx, "abc123", "bundle.json", strings.NewReader(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "bundle.json", info.Name)
	assert.Equal(t, int64(11), info.Size)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "abc123", list[0].ID)

	rc, err := store.Extract(ctx, "abc123")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, `{"ok":true}`, string(content))

	require.NoError(t, store.Delete(ctx, "abc123"))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDirUnknownArtifact(t *testing.T) {
	store, err := NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = store.Extract(context.Background(), "missing")
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), "missing"))
}
