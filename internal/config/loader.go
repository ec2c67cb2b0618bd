package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"scout/pkg/logging"
)

const (
	userConfigDir  = ".config/scout"
	configFileName = "config.yaml"
)

// GetDefaultConfigPath returns the per-user configuration directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from the specified directory, which
// should contain config.yaml. A missing file yields the defaults;
// unknown YAML keys are rejected.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, &ConfigurationError{FilePath: configFilePath, ErrorType: "io", Message: err.Error()}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return Config{}, &ConfigurationError{FilePath: configFilePath, ErrorType: "parse", Message: err.Error()}
	}

	applyDefaults(&config)
	if err := Validate(config); err != nil {
		return Config{}, err
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s (%d targets)", configFilePath, len(config.Targets))
	return config, nil
}

func applyDefaults(config *Config) {
	defaults := GetDefaultConfig()
	if config.Server.Host == "" {
		config.Server.Host = defaults.Server.Host
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.Transport == "" {
		config.Server.Transport = defaults.Server.Transport
	}
	if config.Server.Timeout == 0 {
		config.Server.Timeout = defaults.Server.Timeout
	}
}
