package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/vstore/internal/util"
)

func createDefaultCfg() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		DefaultPolicy: DefaultPolicy,
	}
}

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with
// all default values when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		LogLvl:        util.Pointer(util.DebugLevel),
		DefaultPolicy: util.Pointer("overwrite"),
	}
	cfg := NewConfig(override)

	expCfg := &Config{
		LogLvl:        util.DebugLevel,
		DefaultPolicy: "overwrite",
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_NilOverrideVals(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{})

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values for nil override fields")
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{
		DefaultPolicy: util.Pointer("overwrite"),
	})

	expCfg := createDefaultCfg()
	expCfg.DefaultPolicy = "overwrite"
	assert.Equal(t, expCfg, cfg)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, createDefaultCfg().Validate())

	bad := createDefaultCfg()
	bad.DefaultPolicy = "bogus"
	assert.ErrorContains(t, bad.Validate(), "unknown default_policy")

	bad = createDefaultCfg()
	bad.LogLvl = 99
	assert.ErrorContains(t, bad.Validate(), "out of range")
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigOverrideFile_YAML(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "config.yaml", "default_policy: overwrite\nlog_lvl: 1\n")

	override, err := LoadConfigOverrideFile(path)
	require.NoError(t, err)

	require.NotNil(t, override.DefaultPolicy)
	assert.Equal(t, "overwrite", *override.DefaultPolicy)
	require.NotNil(t, override.LogLvl)
	assert.Equal(t, 1, *override.LogLvl)
}

func TestLoadConfigOverrideFile_JSON(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "config.json", `{"default_policy": "overwrite"}`)

	override, err := LoadConfigOverrideFile(path)
	require.NoError(t, err)

	require.NotNil(t, override.DefaultPolicy)
	assert.Equal(t, "overwrite", *override.DefaultPolicy)
	assert.Nil(t, override.LogLvl, "unset fields stay nil")
}

func TestLoadConfigOverrideFile_UnknownExtension(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "config.toml", "default_policy = 'overwrite'")

	_, err := LoadConfigOverrideFile(path)
	assert.ErrorContains(t, err, "unknown config file extension")
}

func TestLoadConfigOverrideFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigOverrideFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigOverrideEnv(t *testing.T) {
	t.Setenv("VSTORE_DEFAULT_POLICY", "overwrite")

	override, err := LoadConfigOverrideEnv()
	require.NoError(t, err)

	require.NotNil(t, override.DefaultPolicy)
	assert.Equal(t, "overwrite", *override.DefaultPolicy)
	assert.Nil(t, override.LogLvl)
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "config.yml", "default_policy: overwrite\n")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "overwrite", cfg.DefaultPolicy)
	assert.Equal(t, DefaultLogLvl, cfg.LogLvl, "unset fields keep defaults")
}
