package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger implements audit logging to JSON-lines files, one event per
// line, rotated by size.
type FileLogger struct {
	basePath string
	file     *os.File
	mu       sync.Mutex
	encoder  *json.Encoder
	maxSize  int64
	written  int64
}

// FileLoggerConfig configures the file logger.
type FileLoggerConfig struct {
	BasePath string // Directory for audit logs
	MaxSize  int64  // Max file size in bytes before rotation (default: 16MB)
}

// DefaultFileLoggerConfig returns default configuration.
func DefaultFileLoggerConfig() FileLoggerConfig {
	return FileLoggerConfig{
		MaxSize: 16 * 1024 * 1024,
	}
}

// NewFileLogger creates a new file-based audit logger.
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("audit log directory is required")
	}
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	logger := &FileLogger{
		basePath: config.BasePath,
		maxSize:  config.MaxSize,
	}
	if logger.maxSize == 0 {
		logger.maxSize = 16 * 1024 * 1024
	}

	if err := logger.open(); err != nil {
		return nil, err
	}
	return logger, nil
}

// Log writes an event as one JSON line.
func (l *FileLogger) Log(ctx context.Context, event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}

	if l.written+int64(len(data))+1 > l.maxSize {
		if err := l.rotate(); err != nil {
			return err
		}
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	l.written += int64(len(data)) + 1
	return nil
}

// Close flushes and closes the current log file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Path returns the current log file path.
func (l *FileLogger) Path() string {
	return filepath.Join(l.basePath, "upgrade-audit.log")
}

func (l *FileLogger) open() error {
	file, err := os.OpenFile(l.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat audit log: %w", err)
	}

	l.file = file
	l.written = info.Size()
	l.encoder = json.NewEncoder(file)
	return nil
}

// rotate renames the current file with a timestamp suffix and opens a
// fresh one. Callers hold l.mu.
func (l *FileLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close audit log for rotation: %w", err)
	}

	rotated := filepath.Join(l.basePath, fmt.Sprintf("upgrade-audit-%s.log", time.Now().UTC().Format("20060102T150405")))
	if err := os.Rename(l.Path(), rotated); err != nil {
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}

	return l.open()
}
