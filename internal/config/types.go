package config

import (
	"time"

	"scout/internal/tools"
)

// Config is the top-level configuration structure for scout.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Targets []TargetConfig `yaml:"targets"`
}

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// ServerConfig defines how the tool server is exposed.
type ServerConfig struct {
	Host      string `yaml:"host,omitempty"`      // Host to bind to (default: localhost)
	Port      int    `yaml:"port,omitempty"`      // Port for the HTTP endpoint (default: 8090)
	Transport string `yaml:"transport,omitempty"` // streamable-http or stdio (default: streamable-http)

	// ArtifactDir enables the support-package tools when set.
	ArtifactDir string `yaml:"artifactDir,omitempty"`

	// Timeout bounds each backend request.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// CredentialsConfig carries optional backend credentials.
type CredentialsConfig struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// TargetConfig declares one monitored backend and which provider type
// serves it.
type TargetConfig struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Environment string            `yaml:"environment,omitempty"`
	URL         string            `yaml:"url,omitempty"`
	Addr        string            `yaml:"addr,omitempty"`
	Credentials CredentialsConfig `yaml:"credentials,omitempty"`
	Options     map[string]string `yaml:"options,omitempty"`
}

// ToTarget converts the declaration into the runtime target identity.
func (tc TargetConfig) ToTarget() tools.Target {
	return tools.Target{
		Name:        tc.Name,
		Environment: tc.Environment,
		URL:         tc.URL,
		Addr:        tc.Addr,
		Credentials: tools.Credentials{
			Username: tc.Credentials.Username,
			Password: tc.Credentials.Password,
			Token:    tc.Credentials.Token,
		},
		Options: tc.Options,
	}
}

// GetDefaultConfig returns the configuration used when no config file
// exists yet: a bare server with no targets.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8090,
			Transport: TransportStreamableHTTP,
			Timeout:   30 * time.Second,
		},
	}
}
