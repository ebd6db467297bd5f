// Package journal keeps a SQLite record of encrypt and decrypt timings.
// Only sizes and timings are stored, never message values.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

type Entry struct {
	ID          int64
	Operation   string
	Fingerprint string
	InputBits   int
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// Recorder is the write side of the journal.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type Journal struct {
	db *sql.DB
}

const createOperations = `
CREATE TABLE IF NOT EXISTS operations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	operation TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	input_bits INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);`

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if _, err := db.Exec(createOperations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends e. A zero CreatedAt is replaced by the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO operations (operation, fingerprint, input_bits, elapsed_ns, created_at) VALUES (?, ?, ?, ?, ?)",
		e.Operation, e.Fingerprint, e.InputBits, e.Elapsed.Nanoseconds(), e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", e.Operation, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, operation, fingerprint, input_bits, elapsed_ns, created_at FROM operations ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var elapsedNs int64
		if err := rows.Scan(&e.ID, &e.Operation, &e.Fingerprint, &e.InputBits, &elapsedNs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Elapsed = time.Duration(elapsedNs)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
