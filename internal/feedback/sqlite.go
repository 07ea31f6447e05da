package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS feedback (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     TEXT NOT NULL,
		user_id       TEXT NOT NULL,
		feedback_type TEXT NOT NULL,
		description   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_type ON feedback(feedback_type)`,
}

// SQLiteStore mirrors feedback into a SQLite table. Rows are insert-only.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create feedback schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts rec.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (timestamp, user_id, feedback_type, description) VALUES (?, ?, ?, ?)`,
		rec.Timestamp, rec.UserID, string(rec.FeedbackType), rec.Description,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List returns all records in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, user_id, feedback_type, description FROM feedback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var t string
		if err := rows.Scan(&rec.Timestamp, &rec.UserID, &t, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		rec.FeedbackType = Type(t)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountByType returns the number of rows per feedback type.
func (s *SQLiteStore) CountByType(ctx context.Context) (map[Type]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feedback_type, COUNT(*) FROM feedback GROUP BY feedback_type`)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	defer rows.Close()

	counts := make(map[Type]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan feedback count: %w", err)
		}
		counts[Type(t)] = n
	}
	return counts, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
