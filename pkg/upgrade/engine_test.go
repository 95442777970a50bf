package upgrade

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

func renameStub(name, old, new string) *stubModifier {
	return &stubModifier{
		name: name,
		apply: func(doc *Document) (*Outcome, error) {
			if !strings.Contains(doc.Source, old) {
				return &Outcome{Source: doc.Source}, nil
			}
			return &Outcome{
				Source:  strings.ReplaceAll(doc.Source, old, new),
				Changes: []report.Change{{Rule: name, Kind: report.KindKeywordRename, Line: 1, Old: old, New: new}},
			}, nil
		},
	}
}

func TestEngineUpgradeSource(t *testing.T) {
	r := NewRegistry()
	r.Register(renameStub("rename-a", "alpha", "beta"))
	r.Register(renameStub("rename-b", "beta", "gamma"))

	engine := NewEngine(r, nil)
	out, result, err := engine.UpgradeSource("x.py", "v = alpha\n")
	require.NoError(t, err)

	// Modifiers run in order; the second sees the first's output.
	assert.Equal(t, "v = gamma\n", out)
	assert.True(t, result.Changed)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, "rename-a", result.Changes[0].Rule)
	assert.Equal(t, "rename-b", result.Changes[1].Rule)
}

func TestEngineUnmatchedPassesThrough(t *testing.T) {
	r := NewRegistry()
	r.Register(renameStub("rename-a", "alpha", "beta"))

	engine := NewEngine(r, nil)
	src := "v = untouched\n"
	out, result, err := engine.UpgradeSource("x.py", src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.False(t, result.Changed)
}

func TestEngineAliasedImportWarning(t *testing.T) {
	engine := NewEngine(NewRegistry(), nil)
	_, result, err := engine.UpgradeSource("x.py", "import sagemaker as sm\n")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, aliasRule, result.Warnings[0].Rule)
	assert.Equal(t, 1, result.Warnings[0].Line)
}

func TestEngineVersionGating(t *testing.T) {
	r := NewRegistry()
	gated := renameStub("gated", "alpha", "beta")
	gated.constraint = "< 2.0.0"
	r.Register(gated)

	engine := NewEngine(r, nil)

	// No from-version: the modifier runs.
	out, _, err := engine.UpgradeSource("x.py", "alpha\n")
	require.NoError(t, err)
	assert.Equal(t, "beta\n", out)

	// From a 1.x version: still runs.
	require.NoError(t, engine.SetFromVersion("1.72.0"))
	out, _, err = engine.UpgradeSource("x.py", "alpha\n")
	require.NoError(t, err)
	assert.Equal(t, "beta\n", out)

	// Already on 2.x: gated out.
	require.NoError(t, engine.SetFromVersion("2.0.0"))
	out, _, err = engine.UpgradeSource("x.py", "alpha\n")
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)
}

func TestEngineSetFromVersionInvalid(t *testing.T) {
	engine := NewEngine(NewRegistry(), nil)
	assert.Error(t, engine.SetFromVersion("not-a-version"))
	assert.NoError(t, engine.SetFromVersion(""))
}

func TestEngineUpgradeDispatchesNotebook(t *testing.T) {
	r := NewRegistry()
	r.Register(renameStub("rename-a", "alpha", "beta"))
	engine := NewEngine(r, nil)

	nb := `{"cells": [{"cell_type": "code", "metadata": {}, "source": ["x = alpha\n"]}], "nbformat": 4}`
	out, result, err := engine.Upgrade("nb.ipynb", []byte(nb))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Contains(t, string(out), "x = beta")
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 1, result.Changes[0].Cell)
}

func TestEngineUntouchedNotebookBytesIdentical(t *testing.T) {
	engine := NewEngine(NewRegistry(), nil)

	nb := `{"cells": [{"cell_type": "code", "metadata": {}, "source": ["x = 1\n"]}],  "nbformat": 4}`
	out, result, err := engine.Upgrade("nb.ipynb", []byte(nb))
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, nb, string(out))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
}

func TestEngineUnresolvedMultilineImportWarns(t *testing.T) {
	engine := NewEngine(NewRegistry(), nil)

	src := "from sagemaker.session import (\n    s3_input,\n)\n"
	out, result, err := engine.UpgradeSource("x.py", src)
	require.NoError(t, err)

	assert.Equal(t, src, out)
	assert.False(t, result.Changed)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "aliased-imports", result.Warnings[0].Rule)
	assert.Equal(t, 1, result.Warnings[0].Line)
}

func TestEngineNotebookImportsSpanCells(t *testing.T) {
	r := NewRegistry()
	seen := make([]*pysrc.Imports, 0, 2)
	r.Register(&stubModifier{
		name: "capture-imports",
		apply: func(doc *Document) (*Outcome, error) {
			seen = append(seen, doc.Imports)
			return &Outcome{Source: doc.Source}, nil
		},
	})
	engine := NewEngine(r, nil)

	nb := `{"cells": [` +
		`{"cell_type": "code", "metadata": {}, "source": ["import sagemaker\n"]}, ` +
		`{"cell_type": "code", "metadata": {}, "source": ["x = 1\n"]}` +
		`], "nbformat": 4}`
	_, _, err := engine.Upgrade("nb.ipynb", []byte(nb))
	require.NoError(t, err)

	// Every cell sees the import set of the whole notebook.
	require.Len(t, seen, 2)
	for _, im := range seen {
		require.NotNil(t, im)
		assert.Len(t, im.Spellings("sagemaker.estimator.Estimator"), 1)
	}
}
