// Package config loads and validates configuration for both CLIs.
//
// DESIGN: Built-in defaults live in defaults.yaml (embedded). A user YAML
// file is merged over them, so a config only needs the keys it changes.
//
// FILES:
//   - config.go:     Root Config struct, Load(), Validate()
//   - monitoring.go: Logging, alerts, telemetry and metrics settings
//   - defaults.yaml: Built-in values
package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/compresr/chatbot-ops/internal/pii"
	"github.com/compresr/chatbot-ops/internal/simulator"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the root configuration.
type Config struct {
	Feedback   FeedbackConfig   `yaml:"feedback"`   // Feedback collector
	Monitoring MonitoringConfig `yaml:"monitoring"` // Logging sink and alerts
	Simulator  SimulatorConfig  `yaml:"simulator"`  // Simulated chatbot
	PII        PIIConfig        `yaml:"pii"`        // Extra PII patterns
}

// FeedbackConfig contains feedback storage settings.
type FeedbackConfig struct {
	File       string `yaml:"file"`        // JSONL feedback file
	SQLitePath string `yaml:"sqlite_path"` // Optional SQLite mirror, empty disables
}

// SimulatorConfig drives the monitoring simulation.
type SimulatorConfig struct {
	Iterations int                  `yaml:"iterations"` // Interactions per run
	Interval   time.Duration        `yaml:"interval"`   // Pause between interactions
	Seed       uint64               `yaml:"seed"`       // 0 seeds from the clock
	Queries    []string             `yaml:"queries"`    // Sample user queries
	Scenarios  []simulator.Scenario `yaml:"scenarios"`  // Empty uses the built-in scenarios
}

// PIIConfig extends or overrides the built-in PII patterns.
type PIIConfig struct {
	Patterns []pii.Pattern `yaml:"patterns"`
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	return LoadFromBytes(nil)
}

// Load reads a YAML file and merges it over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes merges raw YAML over the defaults.
// Supports ${VAR:-default} env var expansion, env overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvWithDefaults(string(defaultsYAML))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse built-in defaults: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal([]byte(expandEnvWithDefaults(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides lets the environment redirect output files without
// editing config files.
func (c *Config) applyEnvOverrides() {
	// FEEDBACK_FILE overrides the feedback JSONL path
	if path := os.Getenv("FEEDBACK_FILE"); path != "" {
		c.Feedback.File = path
	}

	// MONITOR_LOG_FILE overrides the monitoring log file
	if path := os.Getenv("MONITOR_LOG_FILE"); path != "" {
		c.Monitoring.Log.File = path
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Feedback.File == "" {
		return fmt.Errorf("feedback.file is required")
	}

	if err := c.Monitoring.Validate(); err != nil {
		return err
	}

	if c.Simulator.Iterations < 0 {
		return fmt.Errorf("simulator.iterations must not be negative")
	}
	if c.Simulator.Interval < 0 {
		return fmt.Errorf("simulator.interval must not be negative")
	}
	if len(c.Simulator.Scenarios) > 0 {
		if err := simulator.ValidateScenarios(c.Simulator.Scenarios); err != nil {
			return fmt.Errorf("simulator.scenarios: %w", err)
		}
	}

	if _, err := c.PII.Detector(); err != nil {
		return fmt.Errorf("pii.patterns: %w", err)
	}

	return nil
}

// ScenarioTable returns the configured scenarios or the built-in ones.
func (s SimulatorConfig) ScenarioTable() []simulator.Scenario {
	if len(s.Scenarios) == 0 {
		return simulator.DefaultScenarios
	}
	return s.Scenarios
}

// Detector builds the PII detector: built-in patterns plus configured ones.
func (p PIIConfig) Detector() (*pii.Detector, error) {
	return pii.NewDefaultDetector(p.Patterns...)
}
