// Monitoring configuration - logging, alerts, telemetry and metrics.
//
// DESIGN: Separates logging (zerolog sink, for operators) from telemetry
// (JSONL interaction file) and metrics (prometheus textfile).
package config

import (
	"fmt"

	"github.com/compresr/chatbot-ops/internal/monitoring"
)

// MonitoringConfig contains all monitoring settings.
type MonitoringConfig struct {
	Log         monitoring.LoggerConfig    `yaml:"log"`          // Console + file sink
	Alerts      monitoring.AlertConfig     `yaml:"alerts"`       // Thresholds
	Telemetry   monitoring.TelemetryConfig `yaml:"telemetry"`    // Interaction JSONL file
	MetricsPath string                     `yaml:"metrics_path"` // Prometheus textfile, empty disables
	RedactPII   bool                       `yaml:"redact_pii"`   // Redact PII in persisted payloads
}

// Validate checks monitoring settings.
func (m MonitoringConfig) Validate() error {
	switch m.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("monitoring.log.format must be text or json, got %q", m.Log.Format)
	}
	switch m.Log.Console {
	case "stderr", "stdout", "none":
	default:
		return fmt.Errorf("monitoring.log.console must be stderr, stdout or none, got %q", m.Log.Console)
	}
	if m.Log.Console == "none" && m.Log.File == "" {
		return fmt.Errorf("monitoring.log needs a console stream or a file")
	}
	if m.Alerts.HighLatencyThreshold < 0 {
		return fmt.Errorf("monitoring.alerts.high_latency_threshold must not be negative")
	}
	if m.Telemetry.Enabled && m.Telemetry.Path == "" {
		return fmt.Errorf("monitoring.telemetry.path is required when telemetry is enabled")
	}
	return nil
}
