// Package config persists the CLI's local settings: which hafiz the commands
// act on by default. The engine itself never reads this; it is a convenience
// for the command surface.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/qsrs/internal/db"
)

// Config is the flat qsrs configuration.
type Config struct {
	Version       string `json:"version"`
	ActiveHafizID int64  `json:"active_hafiz_id,omitempty"`
}

func configPath() (string, error) {
	dir, err := db.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads config.json from the qsrs home directory. A missing file yields
// an empty config, not an error.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Version: "1"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes config.json to the qsrs home directory.
func Save(cfg *Config) error {
	dir, err := db.HomeDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
