package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/vstore/internal/util"
)

// EnvPrefix namespaces environment variable overrides, e.g.
// VSTORE_DEFAULT_POLICY=overwrite
const EnvPrefix = "vstore"

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultPolicy is the collision policy name new folders start with
	DefaultPolicy = "reject"
)

// Config contains runtime configuration values for the virtual store.
type Config struct {
	LogLvl        util.LogLevel // Log verbosity (Default info)
	DefaultPolicy string        // Collision policy new folders start with: "reject" or "overwrite" (Default "reject")
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	LogLvl        *int    `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty" envconfig:"LOG_LVL"`
	DefaultPolicy *string `yaml:"default_policy,omitempty" json:"default_policy,omitempty" envconfig:"DEFAULT_POLICY"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		DefaultPolicy: DefaultPolicy,
	}
}

// NewConfig creates a Config from defaults with override applied.
// A nil override returns the defaults unchanged.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
	if override.DefaultPolicy != nil {
		c.DefaultPolicy = *override.DefaultPolicy
	}
}

// Validate reports configuration values no component can act on
func (c *Config) Validate() error {
	switch c.DefaultPolicy {
	case "reject", "overwrite":
	default:
		return fmt.Errorf("unknown default_policy %q", c.DefaultPolicy)
	}
	if c.LogLvl < util.TraceLevel || c.LogLvl > util.ErrorLevel {
		return fmt.Errorf("log_lvl %d out of range", c.LogLvl)
	}
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// LoadConfigOverrideEnv loads configuration overrides from VSTORE_*
// environment variables without merging. Unset variables leave their
// fields nil.
func LoadConfigOverrideEnv() (*ConfigOverride, error) {
	var override ConfigOverride
	if err := envconfig.Process(EnvPrefix, &override); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
