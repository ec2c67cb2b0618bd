package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, TransportStreamableHTTP, cfg.Server.Transport)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Empty(t, cfg.Targets)
}

func TestLoadConfigFull(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9000
  transport: stdio
  artifactDir: /tmp/scout-artifacts
targets:
  - name: prod-cache
    type: redis
    addr: redis-1:6379
    environment: prod
    credentials:
      password: hunter2
  - name: prod-metrics
    type: metrics
    url: http://prom:9090
    options:
      range_queries: "true"
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, "/tmp/scout-artifacts", cfg.Server.ArtifactDir)
	// Unset fields still get defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)

	require.Len(t, cfg.Targets, 2)
	target := cfg.Targets[0].ToTarget()
	assert.Equal(t, "prod-cache", target.Name)
	assert.Equal(t, "prod", target.Environment)
	assert.Equal(t, "redis-1:6379", target.Addr)
	assert.Equal(t, "hunter2", target.Credentials.Password)
	assert.Equal(t, "true", cfg.Targets[1].Options["range_queries"])
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9000
  bananas: true
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "parse", ce.ErrorType)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := writeConfig(t, "server: [not a map")
	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestValidateRequiresNameAndType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Targets = []TargetConfig{{Type: "redis"}}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	cfg.Targets = []TargetConfig{{Name: "prod-cache"}}
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type is required")
}

func TestValidateRejectsToolNameCollision(t *testing.T) {
	cfg := GetDefaultConfig()
	// Different display names, same sanitized form.
	cfg.Targets = []TargetConfig{
		{Name: "prod cache", Type: "redis", Addr: "a:6379"},
		{Name: "prod_cache", Type: "redis", Addr: "b:6379"},
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collide")

	// The same name on different types is fine.
	cfg.Targets = []TargetConfig{
		{Name: "prod", Type: "redis", Addr: "a:6379"},
		{Name: "prod", Type: "metrics", URL: "http://prom:9090"},
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Transport = "carrier-pigeon"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
