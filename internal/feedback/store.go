package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store persists feedback records.
type Store interface {
	// Append adds one record. Records are never updated or removed.
	Append(ctx context.Context, rec Record) error

	// Close releases resources.
	Close() error
}

// =============================================================================
// JSONL STORE
// =============================================================================

// JSONLStore appends one JSON object per line to a file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore returns a store for path. The file is created on first append.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the file path.
func (s *JSONLStore) Path() string {
	return s.path
}

// Append writes rec as a single line. The line is built before the file is
// opened, so an encoding failure never leaves a partial line behind.
func (s *JSONLStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close is a no-op; the file is opened per append.
func (s *JSONLStore) Close() error { return nil }

// StorePath returns the file behind store, or "" when it has none.
// A Tee reports its primary's path.
func StorePath(store Store) string {
	if p, ok := store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// =============================================================================
// TEE
// =============================================================================

type teeStore struct {
	primary Store
	mirrors []Store
}

// Tee writes to primary and then to each mirror. Only primary failures are
// returned; mirror failures are logged and skipped.
func Tee(primary Store, mirrors ...Store) Store {
	if len(mirrors) == 0 {
		return primary
	}
	return &teeStore{primary: primary, mirrors: mirrors}
}

func (t *teeStore) Append(ctx context.Context, rec Record) error {
	if err := t.primary.Append(ctx, rec); err != nil {
		return err
	}
	for _, m := range t.mirrors {
		if err := m.Append(ctx, rec); err != nil {
			log.Warn().Err(err).Str("user_id", rec.UserID).Msg("feedback: mirror append failed")
		}
	}
	return nil
}

func (t *teeStore) Path() string {
	return StorePath(t.primary)
}

func (t *teeStore) Close() error {
	errs := []error{t.primary.Close()}
	for _, m := range t.mirrors {
		errs = append(errs, m.Close())
	}
	return errors.Join(errs...)
}
