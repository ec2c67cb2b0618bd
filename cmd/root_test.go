package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "scout version 1.2.3\n", buf.String())
}

func TestToolsCommandListsCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
targets:
  - name: helpers
    type: util
  - name: prod-cache
    type: redis
    addr: redis-1:6379
`), 0o644))

	configPath = dir
	defer func() { configPath = "" }()

	var buf bytes.Buffer
	toolsCmd.SetOut(&buf)
	require.NoError(t, runTools(toolsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "util_helpers_current_time")
	assert.Contains(t, out, "redis_prod-cache_sample_keys")
	assert.Contains(t, out, "6 tools from 2 providers")
}

func TestToolsCommandBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
targets:
  - name: broken
    type: no-such-type
`), 0o644))

	configPath = dir
	defer func() { configPath = "" }()

	err := runTools(toolsCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type")
}
