// Package config provides configuration management for periodo-cli.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the canonical periodization data service.
const DefaultServerURL = "https://data.perio.do/"

// ConfigDir is the directory name under the user config directory.
const ConfigDir = "periodo"

// Config holds the resolved client configuration.
type Config struct {
	// ServerURL is the base URL of the data service, always ending in
	// exactly one trailing slash.
	ServerURL string `yaml:"server"`
}

// NormalizeServerURL ensures a server URL ends in exactly one trailing slash.
func NormalizeServerURL(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed + "/"
}

// ConfigFilePath returns the path of the optional YAML config file:
// $XDG_CONFIG_HOME/periodo/config.yaml (or the platform equivalent).
func ConfigFilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDir, "config.yaml")
}

// Load resolves the client configuration.
//
// Server URL priority (highest to lowest):
//  1. Provided serverFlag (from -s/--server)
//  2. PERIODO_SERVER environment variable
//  3. YAML config file (ConfigFilePath)
//  4. DefaultServerURL
func Load(serverFlag string) (*Config, error) {
	server := serverFlag

	if server == "" {
		server = os.Getenv("PERIODO_SERVER")
	}

	if server == "" {
		if path := ConfigFilePath(); path != "" {
			if fileCfg, err := loadConfigFile(path); err == nil {
				server = fileCfg.ServerURL
			}
		}
	}

	if server == "" {
		server = DefaultServerURL
	}

	return &Config{ServerURL: NormalizeServerURL(server)}, nil
}

// loadConfigFile reads and parses the YAML config file.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}
