package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	result := NewResult("train.py")
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "train.py", result.InFile)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Changes)
}

func TestAddChangeMarksChanged(t *testing.T) {
	result := NewResult("train.py")
	result.AddChange(Change{Rule: "train-prefix-params", Kind: KindKeywordRename, Line: 3, Old: "train_instance_type", New: "instance_type"})
	assert.True(t, result.Changed)

	result.AddWarning(Warning{Rule: "aliased-imports", Line: 1, Message: "aliased import not recognized"})
	require.Len(t, result.Warnings, 1)
}

func TestSummarize(t *testing.T) {
	a := NewResult("a.py")
	a.AddChange(Change{Rule: "r1", Line: 1})
	a.AddChange(Change{Rule: "r1", Line: 2})
	b := NewResult("b.py")
	b.AddWarning(Warning{Rule: "r2", Line: 1, Message: "skipped"})

	summary := Summarize([]*Result{a, b})
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.ChangedFiles)
	assert.Equal(t, 2, summary.TotalChanges)
	assert.Equal(t, 1, summary.TotalWarnings)
	assert.Equal(t, 2, summary.ByRule["r1"])
}

func TestWriteText(t *testing.T) {
	result := NewResult("train.py")
	result.AddChange(Change{Rule: "train-prefix-params", Kind: KindKeywordRename, Line: 3, Old: "train_max_run", New: "max_run"})
	result.AddWarning(Warning{Rule: "inert-arguments", Line: 9, Cell: 2, Message: "update_endpoint is no longer supported"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, []*Result{result}))

	out := buf.String()
	assert.Contains(t, out, "train.py:")
	assert.Contains(t, out, "train_max_run -> max_run")
	assert.Contains(t, out, "cell 2, line 9")
	assert.Contains(t, out, "Files: 1 (1 changed), changes: 1, warnings: 1")
}

func TestWriteJSON(t *testing.T) {
	result := NewResult("train.py")
	result.AddChange(Change{Rule: "r1", Kind: KindKeywordRename, Line: 1, Old: "a", New: "b"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, []*Result{result}))

	var payload struct {
		Results []Result `json:"results"`
		Summary Summary  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Results, 1)
	assert.Equal(t, 1, payload.Summary.TotalChanges)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "yaml", nil)
	assert.Error(t, err)
}
