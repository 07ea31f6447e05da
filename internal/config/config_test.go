package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/chatbot-ops/internal/pii"
	"github.com/compresr/chatbot-ops/internal/simulator"
)

func TestDefault(t *testing.T) {
	t.Setenv("FEEDBACK_FILE", "")
	t.Setenv("MONITOR_LOG_FILE", "")

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "feedback.jsonl", cfg.Feedback.File)
	assert.Empty(t, cfg.Feedback.SQLitePath)
	assert.Equal(t, "chatbot_monitoring.log", cfg.Monitoring.Log.File)
	assert.Equal(t, "info", cfg.Monitoring.Log.Level)
	assert.Equal(t, "text", cfg.Monitoring.Log.Format)
	assert.Equal(t, "stderr", cfg.Monitoring.Log.Console)
	assert.Equal(t, 5*time.Second, cfg.Monitoring.Alerts.HighLatencyThreshold)
	assert.False(t, cfg.Monitoring.Telemetry.Enabled)
	assert.False(t, cfg.Monitoring.RedactPII)
	assert.Equal(t, 10, cfg.Simulator.Iterations)
	assert.Equal(t, time.Second, cfg.Simulator.Interval)
	assert.Equal(t, simulator.DefaultQueries, cfg.Simulator.Queries)
	assert.Equal(t, simulator.DefaultScenarios, cfg.Simulator.ScenarioTable())
}

func TestLoadFromBytes_MergesOverDefaults(t *testing.T) {
	t.Setenv("FEEDBACK_FILE", "")
	t.Setenv("MONITOR_LOG_FILE", "")

	cfg, err := LoadFromBytes([]byte(`
monitoring:
  alerts:
    high_latency_threshold: 2500ms
simulator:
  iterations: 3
  seed: 42
`))
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.Monitoring.Alerts.HighLatencyThreshold)
	assert.Equal(t, 3, cfg.Simulator.Iterations)
	assert.Equal(t, uint64(42), cfg.Simulator.Seed)
	// untouched keys keep their defaults
	assert.Equal(t, "feedback.jsonl", cfg.Feedback.File)
	assert.Equal(t, "text", cfg.Monitoring.Log.Format)
	assert.Equal(t, time.Second, cfg.Simulator.Interval)
}

func TestLoadFromBytes_EnvExpansion(t *testing.T) {
	t.Setenv("FEEDBACK_FILE", "")
	t.Setenv("MONITOR_LOG_FILE", "")
	t.Setenv("OPS_DATA_DIR", "/var/lib/ops")

	cfg, err := LoadFromBytes([]byte(`
feedback:
  file: ${OPS_DATA_DIR}/feedback.jsonl
  sqlite_path: ${OPS_SQLITE:-/tmp/feedback.db}
`))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ops/feedback.jsonl", cfg.Feedback.File)
	assert.Equal(t, "/tmp/feedback.db", cfg.Feedback.SQLitePath)
}

func TestLoadFromBytes_EnvOverrides(t *testing.T) {
	t.Setenv("FEEDBACK_FILE", "/data/fb.jsonl")
	t.Setenv("MONITOR_LOG_FILE", "/data/monitor.log")

	cfg, err := LoadFromBytes([]byte(`
feedback:
  file: other.jsonl
monitoring:
  log:
    file: other.log
`))
	require.NoError(t, err)

	assert.Equal(t, "/data/fb.jsonl", cfg.Feedback.File)
	assert.Equal(t, "/data/monitor.log", cfg.Monitoring.Log.File)
}

func TestLoadFromBytes_Scenarios(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
simulator:
  scenarios:
    - name: always_slow
      weight: 1
      status: success
      content: "Eventually."
      min_delay: 6s
      max_delay: 6s
`))
	require.NoError(t, err)

	table := cfg.Simulator.ScenarioTable()
	require.Len(t, table, 1)
	assert.Equal(t, "always_slow", table[0].Name)
	assert.Equal(t, 6*time.Second, table[0].MinDelay)
}

func TestLoadFromBytes_PIIPatterns(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
pii:
  patterns:
    - category: SSN
      expr: '\b\d{3}-\d{2}-\d{4}\b'
`))
	require.NoError(t, err)

	detector, err := cfg.PII.Detector()
	require.NoError(t, err)
	findings := detector.Detect("ssn 123-45-6789, mail a@b.io")
	assert.Equal(t, []string{"123-45-6789"}, findings[pii.Category("SSN")])
	assert.Equal(t, []string{"a@b.io"}, findings[pii.CategoryEmail])
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "feedback: [", "failed to parse config file"},
		{"empty feedback file", "feedback:\n  file: \"\"", "feedback.file is required"},
		{"bad format", "monitoring:\n  log:\n    format: xml", "monitoring.log.format"},
		{"bad console", "monitoring:\n  log:\n    console: syslog", "monitoring.log.console"},
		{"no sink", "monitoring:\n  log:\n    console: none\n    file: \"\"", "needs a console stream or a file"},
		{"telemetry without path", "monitoring:\n  telemetry:\n    enabled: true", "monitoring.telemetry.path"},
		{"negative iterations", "simulator:\n  iterations: -1", "simulator.iterations"},
		{"bad scenario", "simulator:\n  scenarios:\n    - name: x\n      weight: -1\n      status: success", "simulator.scenarios"},
		{"bad pii regex", "pii:\n  patterns:\n    - category: X\n      expr: '('", "pii.patterns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FEEDBACK_FILE", "")
			t.Setenv("MONITOR_LOG_FILE", "")

			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("FEEDBACK_FILE", "")
	t.Setenv("MONITOR_LOG_FILE", "")

	path := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulator:\n  iterations: 1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Simulator.Iterations)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Simulator.Iterations)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("SET_VAR", "value")
	t.Setenv("EMPTY_VAR", "")

	assert.Equal(t, "value", expandEnvWithDefaults("${SET_VAR}"))
	assert.Equal(t, "value", expandEnvWithDefaults("${SET_VAR:-fallback}"))
	assert.Equal(t, "fallback", expandEnvWithDefaults("${EMPTY_VAR:-fallback}"))
	assert.Equal(t, "", expandEnvWithDefaults("${UNSET_VAR_XYZ}"))
	assert.Equal(t, "a-value-b", expandEnvWithDefaults("a-${SET_VAR}-b"))
}
