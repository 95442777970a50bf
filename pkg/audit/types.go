// Package audit records what the upgrade tool did to each file: every
// applied change, every warning, and every file it touched or skipped.
// Events can be written to a JSON-lines log, a local SQLite database, or
// both.
package audit

import (
	"encoding/json"
	"time"
)

// EventType represents the category of audit event.
type EventType string

const (
	EventTypeFileRewritten EventType = "upgrade.file_rewritten"
	EventTypeFileUnchanged EventType = "upgrade.file_unchanged"
	EventTypeFileFailed    EventType = "upgrade.file_failed"
	EventTypeChangeApplied EventType = "upgrade.change_applied"
	EventTypeWarningRaised EventType = "upgrade.warning_raised"
)

// Event represents a single audit log entry.
type Event struct {
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	EventType EventType `json:"event_type"`

	// Run context
	RunID   string `json:"run_id"`
	InFile  string `json:"in_file"`
	OutFile string `json:"out_file,omitempty"`

	// Rule context for change/warning events
	Rule string `json:"rule,omitempty"`
	Cell int    `json:"cell,omitempty"`
	Line int    `json:"line,omitempty"`
	Old  string `json:"old,omitempty"`
	New  string `json:"new,omitempty"`

	Message string `json:"message,omitempty"`
}

// ToJSON converts the event to JSON.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event from JSON.
func FromJSON(data []byte) (*Event, error) {
	var event Event
	err := json.Unmarshal(data, &event)
	return &event, err
}
