// Package config loads the server's optional YAML configuration file. Every
// field has a default, so the server runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Transport values accepted by the server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

var exeDirCache string

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

// Config is the full server configuration.
type Config struct {
	Transport string        `yaml:"transport"` // "stdio" or "sse"
	Port      int           `yaml:"port"`      // SSE listen port
	Logging   LoggingConfig `yaml:"logging"`
	// DataPath points at an external taxonomy dataset. Empty means the
	// dataset embedded in the binary.
	DataPath string `yaml:"data_path,omitempty"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Transport: TransportStdio,
		Port:      8686,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigPath is the default config location, resolved next to the executable.
func ConfigPath() string {
	return filepath.Join(getExecutableDir(), ".satellite-aesthetics.yaml")
}

// Load reads the config from the default path. A missing file is not an
// error; defaults apply.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads the config from an explicit path, falling back to
// defaults when the file does not exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown transport %q (want %q or %q)", c.Transport, TransportStdio, TransportSSE)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
