// Package monitoring - logger.go provides the logging sink via zerolog.
//
// DESIGN: Thin wrapper around zerolog with:
//   - Configurable level and format (text/json)
//   - Fan-out to a console stream AND a persistent file (MultiLevelWriter)
//   - Explicit lifecycle: New() once at process start, Close() at exit
//
// The text format renders "<timestamp> - <LEVEL> - <message>". Structured
// fields are only visible in the json format.
package monitoring

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TextTimeFormat is the timestamp layout of text-format lines.
const TextTimeFormat = "2006-01-02 15:04:05,000"

// Structured field names attached to monitoring events.
const (
	FieldEvent         = "event"
	FieldInteractionID = "interaction_id"
	FieldUserID        = "user_id"
	FieldLatency       = "latency_seconds"
	FieldStatus        = "status"
	FieldPIICategories = "pii_categories"
)

var structuredFields = []string{
	FieldEvent,
	FieldInteractionID,
	FieldUserID,
	FieldLatency,
	FieldStatus,
	FieldPIICategories,
}

// Logger wraps zerolog.Logger and owns the log file, if any.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
	once sync.Once
}

// New creates the sink described by cfg. The caller must Close it.
func New(cfg LoggerConfig) (*Logger, error) {
	var outs []io.Writer

	switch cfg.Console {
	case "stderr", "":
		outs = append(outs, os.Stderr)
	case "stdout":
		outs = append(outs, os.Stdout)
	case "none":
	default:
		return nil, fmt.Errorf("unknown console stream %q", cfg.Console)
	}

	var file *os.File
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		outs = append(outs, f)
	}

	l := NewWithWriters(cfg, time.Now, outs...)
	l.file = file
	return l, nil
}

// NewWithWriters builds a sink over arbitrary writers. now stamps events.
// The writers are not closed by Close.
func NewWithWriters(cfg LoggerConfig, now func() time.Time, outs ...io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writers := make([]io.Writer, 0, len(outs))
	for _, out := range outs {
		if cfg.Format == "json" {
			writers = append(writers, out)
		} else {
			writers = append(writers, textWriter(out))
		}
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = zerolog.MultiLevelWriter(writers...)
	}

	zl := zerolog.New(w).Level(level).Hook(timestampHook{now: now})
	return &Logger{zl: zl}
}

// Debug returns a debug event.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info returns an info event.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn returns a warn event.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error returns an error event.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Close flushes and closes the log file. Safe to call more than once.
func (l *Logger) Close() error {
	var err error
	l.once.Do(func() {
		if l.file == nil {
			return
		}
		if serr := l.file.Sync(); serr != nil {
			err = serr
		}
		if cerr := l.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

// =============================================================================
// FORMATTING
// =============================================================================

// timestampHook stamps each event from an injectable clock instead of the
// package-global zerolog time settings.
type timestampHook struct {
	now func() time.Time
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, h.now().Format(time.RFC3339Nano))
}

func textWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: true,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude:   structuredFields,
		FormatTimestamp: formatTextTimestamp,
		FormatLevel:     formatTextLevel,
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}

func formatTextTimestamp(i interface{}) string {
	s, ok := i.(string)
	if !ok {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Format(TextTimeFormat)
}

func formatTextLevel(i interface{}) string {
	s, _ := i.(string)
	switch s {
	case zerolog.LevelWarnValue:
		s = "WARNING"
	case "":
		s = "NOTSET"
	default:
		s = strings.ToUpper(s)
	}
	return "- " + s + " -"
}
