// Package notebook reads and writes Jupyter notebook files for the upgrade
// engine. Only the source of eligible code cells is ever rewritten; cell
// metadata, outputs, execution counts, and any keys this package does not
// know about are carried through untouched.
package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RewriteFunc rewrites the source of one code cell. cell is the 1-based
// index of the cell within the notebook.
type RewriteFunc func(cell int, source string) (string, error)

// Process applies fn to every eligible code cell in raw notebook JSON and
// returns the re-serialized notebook. Cells whose first significant line
// begins with a shell escape or magic marker are skipped, as are cells of
// any type other than "code".
func Process(data []byte, fn RewriteFunc) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse notebook: %w", err)
	}

	rawCells, ok := doc["cells"]
	if !ok {
		return nil, fmt.Errorf("notebook has no cells key")
	}

	var cells []map[string]json.RawMessage
	if err := json.Unmarshal(rawCells, &cells); err != nil {
		return nil, fmt.Errorf("failed to parse notebook cells: %w", err)
	}

	for i, cell := range cells {
		source, lines, ok, err := decodeCell(cell)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		if !ok || ShellEscaped(source) {
			continue
		}

		rewritten, err := fn(i+1, source)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		if rewritten == source {
			continue
		}

		encoded, err := encodeSource(rewritten, lines)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		cell["source"] = encoded
	}

	encodedCells, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notebook cells: %w", err)
	}
	doc["cells"] = encodedCells

	out, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode notebook: %w", err)
	}
	return append(out, '\n'), nil
}

// ShellEscaped reports whether the cell's first significant line begins
// with a shell escape ("!") or magic ("%") marker. Such cells are not
// valid Python and are never rewritten.
func ShellEscaped(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "%")
	}
	return false
}

// decodeCell extracts the source of a code cell. The second return value
// reports whether the source was stored as a list of lines, the third
// whether the cell is a rewritable code cell.
func decodeCell(cell map[string]json.RawMessage) (string, bool, bool, error) {
	rawType, ok := cell["cell_type"]
	if !ok {
		return "", false, false, nil
	}
	var cellType string
	if err := json.Unmarshal(rawType, &cellType); err != nil {
		return "", false, false, fmt.Errorf("invalid cell_type: %w", err)
	}
	if cellType != "code" {
		return "", false, false, nil
	}

	rawSource, ok := cell["source"]
	if !ok {
		return "", false, false, nil
	}

	// nbformat stores source either as a single string or a list of lines.
	var lines []string
	if err := json.Unmarshal(rawSource, &lines); err == nil {
		return strings.Join(lines, ""), true, true, nil
	}
	var source string
	if err := json.Unmarshal(rawSource, &source); err != nil {
		return "", false, false, fmt.Errorf("invalid source: %w", err)
	}
	return source, false, true, nil
}

// encodeSource stores source back in the same shape it was read from.
func encodeSource(source string, asLines bool) (json.RawMessage, error) {
	if !asLines {
		return json.Marshal(source)
	}
	return json.Marshal(splitKeepNewlines(source))
}

// splitKeepNewlines splits source into nbformat-style lines, each keeping
// its trailing newline.
func splitKeepNewlines(source string) []string {
	if source == "" {
		return []string{}
	}
	parts := strings.SplitAfter(source, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
