// Package report collects the outcome of an upgrade run: the changes that
// were applied to each file and the patterns that were recognized but
// deliberately left alone.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Change kinds.
const (
	KindKeywordRename    = "keyword_rename"
	KindImportRelocation = "import_relocation"
	KindReferenceRename  = "reference_rename"
)

// Change records one rewrite applied to a file.
type Change struct {
	Rule    string `json:"rule"`
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Cell    int    `json:"cell,omitempty"` // 1-based notebook cell index, 0 for plain source
	Old     string `json:"old"`
	New     string `json:"new"`
	Context string `json:"context,omitempty"`
}

// Warning records a pattern that was recognized but not rewritten, such as
// an aliased import or an argument that is now inert.
type Warning struct {
	Rule    string `json:"rule"`
	Line    int    `json:"line"`
	Cell    int    `json:"cell,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of upgrading a single file.
type Result struct {
	RunID     string    `json:"run_id"`
	InFile    string    `json:"in_file"`
	OutFile   string    `json:"out_file,omitempty"`
	Changed   bool      `json:"changed"`
	StartedAt time.Time `json:"started_at"`
	Changes   []Change  `json:"changes"`
	Warnings  []Warning `json:"warnings"`
}

// NewResult creates an empty result for a file, stamped with a fresh run ID.
func NewResult(inFile string) *Result {
	return &Result{
		RunID:     uuid.New().String(),
		InFile:    inFile,
		StartedAt: time.Now().UTC(),
		Changes:   make([]Change, 0),
		Warnings:  make([]Warning, 0),
	}
}

// AddChange appends a change and marks the result as changed.
func (r *Result) AddChange(c Change) {
	r.Changes = append(r.Changes, c)
	r.Changed = true
}

// AddWarning appends a warning.
func (r *Result) AddWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Summary provides an overview of one or more results.
type Summary struct {
	TotalFiles    int            `json:"total_files"`
	ChangedFiles  int            `json:"changed_files"`
	TotalChanges  int            `json:"total_changes"`
	TotalWarnings int            `json:"total_warnings"`
	ByRule        map[string]int `json:"by_rule"`
}

// Summarize aggregates results into a summary.
func Summarize(results []*Result) Summary {
	summary := Summary{
		TotalFiles: len(results),
		ByRule:     make(map[string]int),
	}

	for _, result := range results {
		if result.Changed {
			summary.ChangedFiles++
		}
		summary.TotalChanges += len(result.Changes)
		summary.TotalWarnings += len(result.Warnings)
		for _, c := range result.Changes {
			summary.ByRule[c.Rule]++
		}
	}

	return summary
}
