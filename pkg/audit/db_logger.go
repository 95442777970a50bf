package audit

import (
	"context"
	"database/sql"
	"fmt"

	// SQLite driver for the local audit database.
	_ "github.com/mattn/go-sqlite3"
)

// DBLogger implements audit logging to a local SQLite database, giving a
// queryable record of everything an upgrade run changed.
type DBLogger struct {
	db *sql.DB
}

// OpenDBLogger opens (creating if needed) an audit database at path.
func OpenDBLogger(path string) (*DBLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	logger, err := NewDBLogger(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return logger, nil
}

// NewDBLogger creates a database-backed audit logger over an existing
// connection.
func NewDBLogger(db *sql.DB) (*DBLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	logger := &DBLogger{db: db}
	if err := logger.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure audit_events table: %w", err)
	}
	return logger, nil
}

// ensureTable creates the audit_events table if it doesn't exist.
func (l *DBLogger) ensureTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		event_type TEXT NOT NULL,
		run_id TEXT NOT NULL,
		in_file TEXT NOT NULL,
		out_file TEXT,
		rule TEXT,
		cell INTEGER,
		line INTEGER,
		old TEXT,
		new TEXT,
		message TEXT
	)`
	_, err := l.db.Exec(query)
	return err
}

// Log inserts an event row.
func (l *DBLogger) Log(ctx context.Context, event *Event) error {
	query := `
	INSERT INTO audit_events (timestamp, event_type, run_id, in_file, out_file, rule, cell, line, old, new, message)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := l.db.ExecContext(ctx, query,
		event.Timestamp,
		string(event.EventType),
		event.RunID,
		event.InFile,
		event.OutFile,
		event.Rule,
		event.Cell,
		event.Line,
		event.Old,
		event.New,
		event.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (l *DBLogger) Close() error {
	return l.db.Close()
}
