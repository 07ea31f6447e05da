// Package monitoring - alerts.go flags anomalies and errors.
//
// DESIGN: AlertManager logs notable events at appropriate levels:
//   - FlagHighLatency:  Warn when the response took longer than the threshold
//   - FlagChatbotError: Error when the chatbot reported status "error"
//   - FlagPII:          Warn when PII was found in the response
package monitoring

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/compresr/chatbot-ops/internal/pii"
)

// DefaultHighLatencyThreshold applies when AlertConfig leaves it unset.
const DefaultHighLatencyThreshold = 5 * time.Second

// AlertManager flags anomalies and errors.
type AlertManager struct {
	logger               *Logger
	highLatencyThreshold time.Duration
}

// NewAlertManager creates a new alert manager.
func NewAlertManager(logger *Logger, cfg AlertConfig) *AlertManager {
	threshold := cfg.HighLatencyThreshold
	if threshold == 0 {
		threshold = DefaultHighLatencyThreshold
	}
	return &AlertManager{logger: logger, highLatencyThreshold: threshold}
}

// FlagHighLatency logs when latency is strictly above the threshold and
// reports whether it did.
func (am *AlertManager) FlagHighLatency(interactionID, userID string, latency time.Duration) bool {
	if latency <= am.highLatencyThreshold {
		return false
	}
	am.logger.Warn().
		Str(FieldEvent, "high_latency").
		Str(FieldInteractionID, interactionID).
		Str(FieldUserID, userID).
		Float64(FieldLatency, latency.Seconds()).
		Msgf("HighLatency: Response time was %.2fs for user %s", latency.Seconds(), userID)
	return true
}

// FlagChatbotError logs a chatbot-reported error.
func (am *AlertManager) FlagChatbotError(interactionID, userID, content string) {
	am.logger.Error().
		Str(FieldEvent, "chatbot_error").
		Str(FieldInteractionID, interactionID).
		Str(FieldUserID, userID).
		Str(FieldStatus, string(StatusError)).
		Msgf("ChatbotError: User %s encountered an error: %s", userID, content)
}

// FlagPII logs PII found in a response. With redacted set, only per-category
// match counts are logged, never the matched text.
func (am *AlertManager) FlagPII(interactionID, userID string, findings pii.Findings, redacted bool) {
	categories := make([]string, 0, len(findings))
	for _, c := range findings.Categories() {
		categories = append(categories, string(c))
	}

	var details any = findings
	if redacted {
		counts := make(map[pii.Category]int, len(findings))
		for c, m := range findings {
			counts[c] = len(m)
		}
		details = counts
	}
	// json.Marshal sorts map keys, so the message is stable.
	data, err := json.Marshal(details)
	if err != nil {
		data = []byte(fmt.Sprint(details))
	}

	am.logger.Warn().
		Str(FieldEvent, "pii_detected").
		Str(FieldInteractionID, interactionID).
		Str(FieldUserID, userID).
		Strs(FieldPIICategories, categories).
		Msgf("PIIDetection: PII detected for user %s. Details: %s", userID, data)
}
