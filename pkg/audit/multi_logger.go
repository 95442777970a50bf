package audit

import (
	"context"
)

// MultiLogger fans events out to multiple sinks. Writes are synchronous:
// the tool is a short-lived CLI and must not lose trailing events on exit.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to every given sink.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log writes the event to all sinks, continuing past failures and
// returning the first error.
func (m *MultiLogger) Log(ctx context.Context, event *Event) error {
	var firstErr error
	for _, logger := range m.loggers {
		if err := logger.Log(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all sinks, returning the first error.
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, logger := range m.loggers {
		if err := logger.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
