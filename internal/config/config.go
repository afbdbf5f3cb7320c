package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// BufferSizeMB is the trace buffer size in megabytes. Zero disables
	// tracing for the lifetime of the process.
	BufferSizeMB int `json:"bufsizeMB"`
	// GroupMask selects the event groups enabled at start-up, one bit per
	// group. Zero means "all groups".
	GroupMask uint32 `json:"grpmask"`
	// HTTPAddr is the listen address for the control/readout HTTP API.
	HTTPAddr string `json:"httpAddr"`
	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"logLevel"`
	// LogFormat is one of text|json.
	LogFormat string `json:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		BufferSizeMB: 32,
		GroupMask:    0, // expands to all groups
		HTTPAddr:     ":8080",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.BufferSizeMB < 0 {
		return Config{}, fmt.Errorf("parse %s: bufsizeMB must be >= 0", path)
	}
	return cfg, nil
}
