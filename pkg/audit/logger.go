package audit

import (
	"context"
	"time"

	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

// Logger is the interface all audit sinks implement.
type Logger interface {
	Log(ctx context.Context, event *Event) error
	Close() error
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) Log(ctx context.Context, event *Event) error { return nil }
func (NopLogger) Close() error                                { return nil }

// RecordResult writes the full audit trail for one file's result: one
// event per change, one per warning, and a closing file event.
func RecordResult(ctx context.Context, logger Logger, result *report.Result, outFile string) error {
	now := time.Now().UTC()

	for _, c := range result.Changes {
		event := &Event{
			Timestamp: now,
			EventType: EventTypeChangeApplied,
			RunID:     result.RunID,
			InFile:    result.InFile,
			OutFile:   outFile,
			Rule:      c.Rule,
			Cell:      c.Cell,
			Line:      c.Line,
			Old:       c.Old,
			New:       c.New,
		}
		if err := logger.Log(ctx, event); err != nil {
			return err
		}
	}

	for _, w := range result.Warnings {
		event := &Event{
			Timestamp: now,
			EventType: EventTypeWarningRaised,
			RunID:     result.RunID,
			InFile:    result.InFile,
			OutFile:   outFile,
			Rule:      w.Rule,
			Cell:      w.Cell,
			Line:      w.Line,
			Message:   w.Message,
		}
		if err := logger.Log(ctx, event); err != nil {
			return err
		}
	}

	fileEvent := EventTypeFileUnchanged
	if result.Changed {
		fileEvent = EventTypeFileRewritten
	}
	return logger.Log(ctx, &Event{
		Timestamp: now,
		EventType: fileEvent,
		RunID:     result.RunID,
		InFile:    result.InFile,
		OutFile:   outFile,
	})
}
