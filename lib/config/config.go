// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Probe tooling.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Trace configures the trace session facade.
	Trace TraceConfig `yaml:"trace"`

	// Inspect configures trace file inspection.
	Inspect InspectConfig `yaml:"inspect"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
	Trace   *TraceConfig   `yaml:"trace,omitempty"`
	Inspect *InspectConfig `yaml:"inspect,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for Probe data.
	Root string `yaml:"root"`

	// Traces is where recorded trace files are written.
	Traces string `yaml:"traces"`
}

// TraceConfig configures the trace session.
type TraceConfig struct {
	// Nodes are cluster nodes added to the traced set at startup.
	Nodes []string `yaml:"nodes"`

	// FlushTimeout bounds the cluster flush fan-out gather.
	// Default: 5s
	FlushTimeout time.Duration `yaml:"flush_timeout"`

	// FlushParallelism caps concurrent per-node flush requests.
	// Default: 8
	FlushParallelism int `yaml:"flush_parallelism"`
}

// InspectConfig configures trace file inspection.
type InspectConfig struct {
	// Color controls styled output: "auto" (terminal detection),
	// "always", or "never".
	// Default: auto
	Color string `yaml:"color"`

	// Compression is the record compression for newly written trace
	// files: "none", "lz4", or "zstd".
	// Default: lz4
	Compression string `yaml:"compression"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "probe")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root:   defaultRoot,
			Traces: filepath.Join(defaultRoot, "traces"),
		},
		Trace: TraceConfig{
			FlushTimeout:     5 * time.Second,
			FlushParallelism: 8,
		},
		Inspect: InspectConfig{
			Color:       "auto",
			Compression: "lz4",
		},
	}
}

// Load loads configuration from the PROBE_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if PROBE_CONFIG is not set, this fails.
// This ensures deterministic, auditable configuration with no hidden overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("PROBE_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("PROBE_CONFIG environment variable not set; " +
			"set it to the path of your probe.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values - this ensures deterministic, auditable configuration.
// The only expansion performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Traces != "" {
			c.Paths.Traces = overrides.Paths.Traces
		}
	}

	if overrides.Trace != nil {
		if len(overrides.Trace.Nodes) > 0 {
			c.Trace.Nodes = overrides.Trace.Nodes
		}
		if overrides.Trace.FlushTimeout != 0 {
			c.Trace.FlushTimeout = overrides.Trace.FlushTimeout
		}
		if overrides.Trace.FlushParallelism != 0 {
			c.Trace.FlushParallelism = overrides.Trace.FlushParallelism
		}
	}

	if overrides.Inspect != nil {
		if overrides.Inspect.Color != "" {
			c.Inspect.Color = overrides.Inspect.Color
		}
		if overrides.Inspect.Compression != "" {
			c.Inspect.Compression = overrides.Inspect.Compression
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"PROBE_ROOT": c.Paths.Root,
		"HOME":       os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["PROBE_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Traces = expandVars(c.Paths.Traces, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}

	if c.Trace.FlushTimeout <= 0 {
		errs = append(errs, fmt.Errorf("trace.flush_timeout must be positive"))
	}
	if c.Trace.FlushParallelism <= 0 {
		errs = append(errs, fmt.Errorf("trace.flush_parallelism must be positive"))
	}

	colorValues := []string{"auto", "always", "never"}
	if !contains(colorValues, c.Inspect.Color) {
		errs = append(errs, fmt.Errorf("inspect.color must be one of: %v", colorValues))
	}
	compressionValues := []string{"none", "lz4", "zstd"}
	if !contains(compressionValues, c.Inspect.Compression) {
		errs = append(errs, fmt.Errorf("inspect.compression must be one of: %v", compressionValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.Root,
		c.Paths.Traces,
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
