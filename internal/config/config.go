package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tsanalyzer/internal/input"
)

// DefaultOutputFile is the analysis file name written next to a submission.
const DefaultOutputFile = "analysis.json"

// Config holds all tsanalyzer configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Where and whether results are written
	Output OutputConfig `yaml:"output"`

	// Submission discovery
	Input InputConfig `yaml:"input"`

	// Concurrent batch runs
	Batch BatchConfig `yaml:"batch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig configures result writing.
type OutputConfig struct {
	// File is absolute, or relative to the submission directory.
	File string `yaml:"file"`
	// Dry skips writing; results are only printed.
	Dry bool `yaml:"dry"`
}

// InputConfig configures submission discovery.
type InputConfig struct {
	IgnorePatterns []string `yaml:"ignore_patterns"`
	Extensions     []string `yaml:"extensions"`
	MaxFileBytes   int64    `yaml:"max_file_bytes"`
}

// BatchConfig configures batch runs.
type BatchConfig struct {
	// Concurrency bounds the number of submissions analyzed at once.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	discovery := input.DefaultOptions()

	return &Config{
		Name:    "tsanalyzer",
		Version: "0.4.0",

		Output: OutputConfig{
			File: DefaultOutputFile,
		},

		Input: InputConfig{
			IgnorePatterns: discovery.IgnorePatterns,
			Extensions:     discovery.Extensions,
			MaxFileBytes:   discovery.MaxFileBytes,
		},

		Batch: BatchConfig{
			Concurrency: 4,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Malformed
// numeric and boolean values are ignored.
func (c *Config) applyEnvOverrides() {
	if file := os.Getenv("TSANALYZER_OUTPUT"); file != "" {
		c.Output.File = file
	}
	if dry := os.Getenv("TSANALYZER_DRY"); dry != "" {
		if v, err := strconv.ParseBool(dry); err == nil {
			c.Output.Dry = v
		}
	}
	if n := os.Getenv("TSANALYZER_CONCURRENCY"); n != "" {
		if v, err := strconv.Atoi(n); err == nil && v > 0 {
			c.Batch.Concurrency = v
		}
	}
	if level := os.Getenv("TSANALYZER_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
		c.Logging.DebugMode = true
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.File) == "" {
		return fmt.Errorf("output file not configured")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("invalid batch concurrency: %d (must be at least 1)", c.Batch.Concurrency)
	}
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("no source extensions configured")
	}
	if c.Input.MaxFileBytes < 0 {
		return fmt.Errorf("invalid max_file_bytes: %d", c.Input.MaxFileBytes)
	}

	validLevel := c.Logging.Level == ""
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}

// InputOptions returns the discovery rules.
func (c *Config) InputOptions() input.Options {
	return input.Options{
		IgnorePatterns: c.Input.IgnorePatterns,
		Extensions:     c.Input.Extensions,
		MaxFileBytes:   c.Input.MaxFileBytes,
	}
}

// OutputPath resolves the output file against a submission directory.
func (c *Config) OutputPath(inputDir string) string {
	file := c.Output.File
	if file == "" {
		file = DefaultOutputFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(inputDir, file)
}
