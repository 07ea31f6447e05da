// Package feedback collects structured user feedback about the chatbot.
//
// DESIGN: A Record is validated once (NewRecord) and then only appended,
// never rewritten. The type table (Options) is the single place that maps
// menu choices to feedback types.
package feedback

import (
	"errors"
	"strings"
	"time"
)

// TimestampLayout is ISO-8601 in UTC with microseconds, e.g.
// 2024-05-01T12:30:00.123456Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// ErrValidation is returned when a required field is empty.
var ErrValidation = errors.New("user id and description cannot be empty")

// =============================================================================
// TYPES
// =============================================================================

// Type classifies a piece of feedback.
type Type string

const (
	TypeBugReport       Type = "bug_report"
	TypeSuggestion      Type = "suggestion"
	TypeIncorrectAnswer Type = "incorrect_answer"
	TypeOther           Type = "other"
)

// Option is one entry of the feedback type menu.
type Option struct {
	Key   string
	Label string
	Type  Type
}

// Options is the feedback type menu, in display order.
var Options = []Option{
	{Key: "1", Label: "Bug Report", Type: TypeBugReport},
	{Key: "2", Label: "Suggestion", Type: TypeSuggestion},
	{Key: "3", Label: "Incorrect Answer", Type: TypeIncorrectAnswer},
	{Key: "4", Label: "Other", Type: TypeOther},
}

// TypeForChoice maps a menu key to its type. Anything unrecognized is
// TypeOther.
func TypeForChoice(choice string) Type {
	choice = strings.TrimSpace(choice)
	for _, o := range Options {
		if o.Key == choice {
			return o.Type
		}
	}
	return TypeOther
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, o := range Options {
		if o.Type == t {
			return true
		}
	}
	return false
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one line of the feedback file.
type Record struct {
	Timestamp    string `json:"timestamp"`
	UserID       string `json:"user_id"`
	FeedbackType Type   `json:"feedback_type"`
	Description  string `json:"description"`
}

// NewRecord validates and builds a record stamped at now (converted to UTC).
// Unknown types become TypeOther.
func NewRecord(userID string, t Type, description string, now time.Time) (Record, error) {
	userID = strings.TrimSpace(userID)
	description = strings.TrimSpace(description)
	if userID == "" || description == "" {
		return Record{}, ErrValidation
	}
	if !t.Valid() {
		t = TypeOther
	}
	return Record{
		Timestamp:    now.UTC().Format(TimestampLayout),
		UserID:       userID,
		FeedbackType: t,
		Description:  description,
	}, nil
}
