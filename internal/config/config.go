// Package config loads sift configuration from defaults, an optional YAML
// file, and SIFT_* environment variables, in that precedence order (env
// wins). Command-line flags are layered on top by the caller.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field-source strategies.
const (
	StrategyStateless = "stateless"
	StrategyInventory = "inventory"
)

// defaultFile is picked up from the working directory when SIFT_CONFIG is
// unset.
const defaultFile = "sift.yaml"

// Config holds all sift configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig holds input source settings.
type InputConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig holds mapping engine settings.
type EngineConfig struct {
	// Strategy selects how extractors find candidate fields: "stateless"
	// scans each record, "inventory" consults the pre-built corpus catalog.
	Strategy string `yaml:"strategy"`
}

// OutputConfig holds result destination settings.
type OutputConfig struct {
	ValidPath   string `yaml:"valid_path"`
	InvalidPath string `yaml:"invalid_path"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:  InputConfig{Path: "events.jsonl"},
		Engine: EngineConfig{Strategy: StrategyStateless},
		Output: OutputConfig{
			ValidPath:   "unified_events.json",
			InvalidPath: "invalid_events.json",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the effective configuration. A config file named by
// SIFT_CONFIG is required to exist; the default sift.yaml is used only when
// present.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("SIFT_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultFile
	}
	if err := cfg.applyFile(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return cfg, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setenv(&c.Input.Path, "SIFT_INPUT")
	setenv(&c.Engine.Strategy, "SIFT_STRATEGY")
	setenv(&c.Output.ValidPath, "SIFT_VALID_OUTPUT")
	setenv(&c.Output.InvalidPath, "SIFT_INVALID_OUTPUT")
	setenv(&c.Log.Level, "SIFT_LOG_LEVEL")
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects settings no component can act on.
func (c Config) Validate() error {
	switch c.Engine.Strategy {
	case StrategyStateless, StrategyInventory:
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Engine.Strategy)
	}
	if c.Input.Path == "" {
		return fmt.Errorf("config: input path is empty")
	}
	if c.Output.ValidPath == "" || c.Output.InvalidPath == "" {
		return fmt.Errorf("config: output paths must be set")
	}
	return nil
}
