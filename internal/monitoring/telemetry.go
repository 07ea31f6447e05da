// Package monitoring - telemetry.go records interactions to a JSONL file.
//
// DESIGN: Tracker appends each InteractionLog payload as one line, right
// after the interaction is observed. The payload is written as given, so a
// redacted payload stays redacted on disk.
package monitoring

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tracker handles interaction recording to a JSONL file.
type Tracker struct {
	config TelemetryConfig
	logger *Logger
	count  int
	mu     sync.Mutex
}

// NewTracker creates a new tracker. A disabled tracker records nothing.
func NewTracker(cfg TelemetryConfig, logger *Logger) (*Tracker, error) {
	t := &Tracker{config: cfg, logger: logger}

	if !cfg.Enabled {
		return t, nil
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("telemetry path is required when telemetry is enabled")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0750); err != nil {
		return nil, fmt.Errorf("create telemetry dir: %w", err)
	}
	// Open once so an unwritable path fails here, not on the first Record
	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("open telemetry file: %w", err)
	}

	return t, nil
}

// appendLine appends data plus a newline to the file.
func appendLine(path string, data []byte) error {
	line := make([]byte, 0, len(data)+1)
	line = append(line, bytes.TrimRight(data, "\n")...)
	line = append(line, '\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}

// Enabled reports whether the tracker writes anything.
func (t *Tracker) Enabled() bool {
	return t != nil && t.config.Enabled
}

// Record appends one JSON payload. Write failures are logged, not returned.
func (t *Tracker) Record(payload []byte) {
	if !t.Enabled() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := appendLine(t.config.Path, payload); err != nil {
		t.logger.Error().Err(err).Str("path", t.config.Path).Msg("telemetry: failed to write interaction")
		return
	}
	t.count++
}

// Count returns the number of recorded interactions.
func (t *Tracker) Count() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Close logs a session summary.
func (t *Tracker) Close() error {
	if !t.Enabled() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count > 0 {
		t.logger.Debug().
			Str("path", t.config.Path).
			Int("events", t.count).
			Msg("telemetry: session complete")
	}
	return nil
}
