// Package monitoring - monitor.go evaluates chatbot interactions.
//
// DESIGN: Observe runs the checks in a fixed order:
//  1. Latency:  warn if latency > threshold
//  2. Error:    status "error" logs at error level and STOPS here
//  3. PII:      warn if the detector matched anything
//  4. Summary:  info "InteractionLog: <json>" on every non-error call
//
// Every event goes through the Logger passed to NewMonitor; the Monitor never
// touches the global zerolog logger.
package monitoring

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/compresr/chatbot-ops/internal/pii"
)

// MonitorConfig wires a Monitor's collaborators. Only Logger is required.
type MonitorConfig struct {
	Alerts    AlertConfig
	Detector  *pii.Detector // nil uses the default patterns
	Metrics   *Metrics      // optional
	Tracker   *Tracker      // optional
	RedactPII bool          // redact the response in persisted payloads

	Now   func() time.Time // defaults to time.Now
	NewID func() string    // defaults to a random UUID
}

// Monitor checks interactions for latency, errors and PII.
type Monitor struct {
	logger   *Logger
	alerts   *AlertManager
	detector *pii.Detector
	metrics  *Metrics
	tracker  *Tracker
	redact   bool
	now      func() time.Time
	newID    func() string
}

// Outcome reports which signals fired for one interaction.
type Outcome struct {
	InteractionID string
	HighLatency   bool
	Error         bool
	PII           pii.Findings
	Entry         *InteractionLogEntry // nil on the error path
}

// NewMonitor creates a monitor that logs through logger.
func NewMonitor(logger *Logger, cfg MonitorConfig) *Monitor {
	m := &Monitor{
		logger:   logger,
		alerts:   NewAlertManager(logger, cfg.Alerts),
		detector: cfg.Detector,
		metrics:  cfg.Metrics,
		tracker:  cfg.Tracker,
		redact:   cfg.RedactPII,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}
	if m.detector == nil {
		m.detector = pii.MustDefaultDetector()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = func() string { return uuid.New().String() }
	}
	return m
}

// Observe evaluates one interaction.
func (m *Monitor) Observe(userID, request string, resp Response, latency time.Duration) Outcome {
	out := Outcome{InteractionID: m.newID()}

	m.metrics.RecordInteraction(resp.Status, latency)

	if m.alerts.FlagHighLatency(out.InteractionID, userID, latency) {
		out.HighLatency = true
		m.metrics.RecordHighLatency()
	}

	if resp.Status == StatusError {
		out.Error = true
		m.alerts.FlagChatbotError(out.InteractionID, userID, resp.Content)
		return out
	}

	findings := m.detector.Detect(resp.Content)
	if findings.Any() {
		out.PII = findings
		m.metrics.RecordPII(findings)
		m.alerts.FlagPII(out.InteractionID, userID, findings, m.redact)
	}

	entry := &InteractionLogEntry{
		Timestamp:      m.now().UTC().Format(TimestampLayout),
		InteractionID:  out.InteractionID,
		UserID:         userID,
		Request:        request,
		Response:       resp.Content,
		LatencySeconds: latency.Seconds(),
		PIIDetected:    findings.Any(),
		Status:         resp.Status,
	}
	out.Entry = entry

	payload, err := m.payload(entry, findings)
	if err != nil {
		m.logger.Error().Err(err).Str(FieldInteractionID, out.InteractionID).Msg("encode interaction log")
		return out
	}

	m.logger.Info().
		Str(FieldEvent, "interaction").
		Str(FieldInteractionID, out.InteractionID).
		Str(FieldUserID, userID).
		Float64(FieldLatency, entry.LatencySeconds).
		Str(FieldStatus, string(entry.Status)).
		Msg("InteractionLog: " + string(payload))

	m.tracker.Record(payload)
	return out
}

// payload encodes the entry without HTML escaping. When redaction is on the
// response field is rewritten in place, leaving the entry itself untouched.
func (m *Monitor) payload(entry *InteractionLogEntry, findings pii.Findings) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return nil, err
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	if !m.redact || !findings.Any() {
		return data, nil
	}
	return sjson.SetBytes(data, "response", m.detector.Redact(entry.Response))
}
