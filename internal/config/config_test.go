package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TSANALYZER_OUTPUT", "TSANALYZER_DRY", "TSANALYZER_CONCURRENCY", "TSANALYZER_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "tsanalyzer" {
		t.Errorf("expected Name=tsanalyzer, got %s", cfg.Name)
	}
	if cfg.Output.File != "analysis.json" {
		t.Errorf("expected Output.File=analysis.json, got %s", cfg.Output.File)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("expected Batch.Concurrency=4, got %d", cfg.Batch.Concurrency)
	}
	if cfg.Logging.DebugMode {
		t.Error("expected logging to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "tsanalyzer.yaml")

	cfg := DefaultConfig()
	cfg.Output.File = "/tmp/out.json"
	cfg.Output.Dry = true
	cfg.Batch.Concurrency = 9
	cfg.Logging.Categories = map[string]bool{"parse": false}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Output.File != "/tmp/out.json" {
		t.Errorf("expected Output.File=/tmp/out.json, got %s", loaded.Output.File)
	}
	if !loaded.Output.Dry {
		t.Error("expected Output.Dry=true")
	}
	if loaded.Batch.Concurrency != 9 {
		t.Errorf("expected Batch.Concurrency=9, got %d", loaded.Batch.Concurrency)
	}
	if enabled, ok := loaded.Logging.Categories["parse"]; !ok || enabled {
		t.Errorf("expected parse category disabled, got %v", loaded.Logging.Categories)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.File != DefaultOutputFile {
		t.Errorf("expected defaults, got %+v", cfg.Output)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tsanalyzer.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dry: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Output.Dry {
		t.Error("expected Output.Dry=true")
	}
	if cfg.Output.File != DefaultOutputFile {
		t.Errorf("expected default output file, got %s", cfg.Output.File)
	}
	if len(cfg.Input.Extensions) == 0 {
		t.Error("expected default extensions")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty output", func(c *Config) { c.Output.File = " " }},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }},
		{"no extensions", func(c *Config) { c.Input.Extensions = nil }},
		{"negative size", func(c *Config) { c.Input.MaxFileBytes = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_OutputPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.OutputPath("/sub"); got != filepath.Join("/sub", "analysis.json") {
		t.Errorf("relative output: got %s", got)
	}

	abs := filepath.Join(t.TempDir(), "out.json")
	cfg.Output.File = abs
	if got := cfg.OutputPath("/sub"); got != abs {
		t.Errorf("absolute output: got %s", got)
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("parse") {
		t.Error("categories must be disabled without debug_mode")
	}

	lc.DebugMode = true
	if !lc.IsCategoryEnabled("parse") {
		t.Error("categories default to enabled in debug mode")
	}

	lc.Categories = map[string]bool{"parse": false}
	if lc.IsCategoryEnabled("parse") {
		t.Error("explicitly disabled category reported enabled")
	}
	if !lc.IsCategoryEnabled("input") {
		t.Error("unlisted category should be enabled")
	}

	opts := lc.Options()
	if !opts.DebugMode || opts.Categories["parse"] {
		t.Errorf("options not carried over: %+v", opts)
	}
}
