// Package monitoring - types.go defines shared types.
//
// DESIGN: These types are used by monitoring/, simulator/ and cmd/.
// Defined here ONCE to avoid duplication and circular imports.
//
// TYPES:
//   - Status, Response:     What a chatbot returned
//   - InteractionLogEntry:  Summary logged for every non-error interaction
//   - Config types:         LoggerConfig, AlertConfig, TelemetryConfig
package monitoring

import "time"

// TimestampLayout is ISO-8601 in UTC with microseconds, e.g.
// 2024-05-01T12:30:00.123456Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// =============================================================================
// CHATBOT RESPONSE
// =============================================================================

// Status is the outcome reported by the chatbot backend.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Response is a single chatbot reply.
type Response struct {
	Status  Status `json:"status"`
	Content string `json:"content"`
}

// =============================================================================
// EVENT TYPES
// =============================================================================

// InteractionLogEntry summarizes one interaction. It is embedded as JSON in
// the InteractionLog message and optionally appended to the tracker file.
type InteractionLogEntry struct {
	Timestamp      string  `json:"timestamp"`
	InteractionID  string  `json:"interaction_id"`
	UserID         string  `json:"user_id"`
	Request        string  `json:"request"`
	Response       string  `json:"response"`
	LatencySeconds float64 `json:"latency_seconds"`
	PIIDetected    bool    `json:"pii_detected"`
	Status         Status  `json:"status"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// LoggerConfig contains logging sink configuration.
type LoggerConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn, error
	Format  string `yaml:"format"`  // text, json
	File    string `yaml:"file"`    // persistent log file; empty disables
	Console string `yaml:"console"` // stderr, stdout, none
}

// AlertConfig contains alert thresholds.
type AlertConfig struct {
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"`
}

// TelemetryConfig controls the interaction JSONL tracker.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
