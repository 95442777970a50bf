// Package modifiers contains the built-in upgrade rules: the v1 to v2
// keyword renames, import relocations, and the checks for patterns the
// tool recognizes but deliberately leaves alone.
package modifiers

import (
	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// importScope returns the import bindings in scope for doc: the whole
// file's bindings when the engine supplies them, otherwise the ones in
// the document's own source.
func importScope(doc *upgrade.Document) *pysrc.Imports {
	if doc.Imports != nil {
		return doc.Imports
	}
	return pysrc.ScanImports(doc.Source)
}

// BaseModifier provides common functionality for modifiers.
type BaseModifier struct {
	ModName        string
	ModDescription string
	ModConstraint  string
}

func (m *BaseModifier) Name() string        { return m.ModName }
func (m *BaseModifier) Description() string { return m.ModDescription }
func (m *BaseModifier) Constraint() string  { return m.ModConstraint }
