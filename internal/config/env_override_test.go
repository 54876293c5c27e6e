package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("TSANALYZER_OUTPUT replaces the output file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TSANALYZER_OUTPUT", "result.json")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "result.json", cfg.Output.File)
	})

	t.Run("TSANALYZER_DRY parses booleans", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TSANALYZER_DRY", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Output.Dry)

		t.Setenv("TSANALYZER_DRY", "0")
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Output.Dry)
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TSANALYZER_DRY", "maybe")
		t.Setenv("TSANALYZER_CONCURRENCY", "-3")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.False(t, cfg.Output.Dry)
		assert.Equal(t, 4, cfg.Batch.Concurrency)
	})

	t.Run("TSANALYZER_CONCURRENCY sets batch concurrency", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TSANALYZER_CONCURRENCY", "16")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, 16, cfg.Batch.Concurrency)
	})

	t.Run("TSANALYZER_LOG_LEVEL enables logging", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TSANALYZER_LOG_LEVEL", "DEBUG")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("Load applies overrides over file values", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "tsanalyzer.yaml")

		cfg := DefaultConfig()
		cfg.Output.File = "from-file.json"
		require.NoError(t, cfg.Save(path))

		t.Setenv("TSANALYZER_OUTPUT", "from-env.json")
		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env.json", loaded.Output.File)
	})
}
