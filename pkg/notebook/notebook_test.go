package notebook

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": ["# Training\n"]
  },
  {
   "cell_type": "code",
   "execution_count": 2,
   "metadata": {"tags": ["keep"]},
   "outputs": [{"output_type": "stream", "text": ["done\n"]}],
   "source": ["est = PyTorch(\n", "    train_instance_count=2,\n", ")\n"]
  },
  {
   "cell_type": "code",
   "metadata": {},
   "source": ["!pip install sagemaker\n", "print('hi')\n"]
  },
  {
   "cell_type": "code",
   "metadata": {},
   "source": "%%bash\necho hi\n"
  }
 ],
 "metadata": {"kernelspec": {"name": "python3"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestProcessRewritesCodeCells(t *testing.T) {
	var visited []int
	out, err := Process([]byte(sampleNotebook), func(cell int, source string) (string, error) {
		visited = append(visited, cell)
		return strings.ReplaceAll(source, "train_instance_count", "instance_count"), nil
	})
	require.NoError(t, err)

	// Only cell 2 is eligible: cell 1 is markdown, cells 3 and 4 are
	// shell-escaped.
	assert.Equal(t, []int{2}, visited)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))

	var cells []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["cells"], &cells))
	require.Len(t, cells, 4)

	var lines []string
	require.NoError(t, json.Unmarshal(cells[1]["source"], &lines))
	assert.Equal(t, []string{"est = PyTorch(\n", "    instance_count=2,\n", ")\n"}, lines)

	// Outputs, execution counts, and metadata survive a rewrite.
	assert.Contains(t, string(cells[1]["outputs"]), "done")
	assert.Equal(t, "2", string(cells[1]["execution_count"]))
	assert.Contains(t, string(cells[1]["metadata"]), "keep")
	assert.Contains(t, string(doc["metadata"]), "kernelspec")
	assert.Equal(t, "4", string(doc["nbformat"]))
}

func TestProcessShellEscapedUntouched(t *testing.T) {
	out, err := Process([]byte(sampleNotebook), func(cell int, source string) (string, error) {
		return strings.ReplaceAll(source, "hi", "rewritten"), nil
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "print('hi')")
	assert.Contains(t, string(out), "echo hi")
}

func TestProcessStringSourceShape(t *testing.T) {
	nb := `{"cells": [{"cell_type": "code", "metadata": {}, "source": "x = RealTimePredictor(e)\n"}], "nbformat": 4}`
	out, err := Process([]byte(nb), func(cell int, source string) (string, error) {
		return strings.ReplaceAll(source, "RealTimePredictor", "Predictor"), nil
	})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
	var cells []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["cells"], &cells))

	// A string-shaped source stays a string.
	var source string
	require.NoError(t, json.Unmarshal(cells[0]["source"], &source))
	assert.Equal(t, "x = Predictor(e)\n", source)
}

func TestProcessInvalidJSON(t *testing.T) {
	_, err := Process([]byte("not json"), func(int, string) (string, error) { return "", nil })
	assert.Error(t, err)

	_, err = Process([]byte(`{"nbformat": 4}`), func(int, string) (string, error) { return "", nil })
	assert.Error(t, err)
}

func TestShellEscaped(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		escaped bool
	}{
		{"pip install", "!pip install sagemaker\n", true},
		{"cell magic", "%%bash\necho hi\n", true},
		{"line magic", "%matplotlib inline\n", true},
		{"leading blank lines", "\n\n  !ls\n", true},
		{"plain code", "import sagemaker\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.escaped, ShellEscaped(tt.source))
		})
	}
}
