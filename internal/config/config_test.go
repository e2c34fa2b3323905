package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SIFT_CONFIG", "SIFT_INPUT", "SIFT_STRATEGY",
		"SIFT_VALID_OUTPUT", "SIFT_INVALID_OUTPUT", "SIFT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir()) // no sift.yaml here

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "events.jsonl", cfg.Input.Path)
	assert.Equal(t, StrategyStateless, cfg.Engine.Strategy)
	assert.Equal(t, "unified_events.json", cfg.Output.ValidPath)
	assert.Equal(t, "invalid_events.json", cfg.Output.InvalidPath)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SIFT_INPUT", "custom.jsonl")
	t.Setenv("SIFT_STRATEGY", StrategyInventory)
	t.Setenv("SIFT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom.jsonl", cfg.Input.Path)
	assert.Equal(t, StrategyInventory, cfg.Engine.Strategy)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input:
  path: vendor_dump.jsonl
engine:
  strategy: inventory
output:
  valid_path: out.json
`), 0644))
	t.Setenv("SIFT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vendor_dump.jsonl", cfg.Input.Path)
	assert.Equal(t, StrategyInventory, cfg.Engine.Strategy)
	assert.Equal(t, "out.json", cfg.Output.ValidPath)
	// Untouched keys keep their defaults.
	assert.Equal(t, "invalid_events.json", cfg.Output.InvalidPath)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  path: from_file.jsonl\n"), 0644))
	t.Setenv("SIFT_CONFIG", path)
	t.Setenv("SIFT_INPUT", "from_env.jsonl")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from_env.jsonl", cfg.Input.Path)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIFT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaultFilePickedUpFromCwd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sift.yaml"), []byte("log:\n  level: warn\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{ input: ["), 0644))
	t.Setenv("SIFT_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Engine.Strategy = "psychic"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Input.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.InvalidPath = ""
	assert.Error(t, cfg.Validate())
}
