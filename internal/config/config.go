package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat todo CLI configuration
type Config struct {
	Version    string `json:"version"`
	OwnerID    string `json:"owner_id,omitempty"`    // default acting owner for CLI commands
	ServerAddr string `json:"server_addr,omitempty"` // listen address for `todo serve`
}

// DefaultServerAddr is used when the config does not set one.
const DefaultServerAddr = ":8484"

// LoadConfig reads .todo/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".todo", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	todoDir := filepath.Join(dir, ".todo")
	if err := os.MkdirAll(todoDir, 0755); err != nil {
		return fmt.Errorf("failed to create .todo dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(todoDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultDir returns the directory holding the .todo config dir, normally
// the user's home directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// Addr returns the configured server address or the default.
func (c *Config) Addr() string {
	if c != nil && c.ServerAddr != "" {
		return c.ServerAddr
	}
	return DefaultServerAddr
}
