package monitoring_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/chatbot-ops/internal/monitoring"
)

func TestTextFormat_LineShape(t *testing.T) {
	console := &bytes.Buffer{}
	file := &bytes.Buffer{}
	logger := monitoring.NewWithWriters(monitoring.LoggerConfig{Format: "text"}, clock, console, file)
	m := monitoring.NewMonitor(logger, monitoring.MonitorConfig{Now: clock})

	m.Observe("u1", "q", monitoring.Response{Status: monitoring.StatusSuccess, Content: "ok"}, 6*time.Second)

	lines := strings.Split(strings.TrimRight(console.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-05-01 12:30:00,123 - WARNING - HighLatency: Response time was 6.00s for user u1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-05-01 12:30:00,123 - INFO - InteractionLog: {"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "}"), lines[1])

	// Both writers receive the same lines.
	assert.Equal(t, console.String(), file.String())
}

func TestTextFormat_ErrorLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := monitoring.NewWithWriters(monitoring.LoggerConfig{}, clock, buf)
	m := monitoring.NewMonitor(logger, monitoring.MonitorConfig{})

	m.Observe("u9", "q", monitoring.Response{Status: monitoring.StatusError, Content: "down"}, time.Second)

	assert.Equal(t, "2024-05-01 12:30:00,123 - ERROR - ChatbotError: User u9 encountered an error: down\n", buf.String())
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := monitoring.NewWithWriters(monitoring.LoggerConfig{Level: "warn"}, clock, buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "- WARNING - shown")
}

func TestNew_FileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chatbot_monitoring.log")
	cfg := monitoring.LoggerConfig{Level: "info", Format: "text", File: path, Console: "none"}

	first, err := monitoring.New(cfg)
	require.NoError(t, err)
	first.Info().Msg("first run")
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	second, err := monitoring.New(cfg)
	require.NoError(t, err)
	second.Error().Msg("second run")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - INFO - first run$`, lines[0])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - ERROR - second run$`, lines[1])
}

func TestNew_UnknownConsole(t *testing.T) {
	_, err := monitoring.New(monitoring.LoggerConfig{Console: "printer"})
	assert.Error(t, err)
}
