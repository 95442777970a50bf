package upgrade

import (
	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

// Document is one piece of Python source being upgraded: either a whole
// source file or the source of a single notebook cell.
type Document struct {
	Path   string
	Source string
	Cell   int // 1-based notebook cell index, 0 for plain source files

	// Imports holds the import bindings of the whole file when it is
	// wider than Source, as with a notebook whose imports live in an
	// earlier cell. Nil means Source is the whole file.
	Imports *pysrc.Imports
}

// Outcome is the result of applying one modifier to a document.
type Outcome struct {
	Source   string
	Changes  []report.Change
	Warnings []report.Warning
}

// Modifier is one upgrade rule. A modifier rewrites the patterns it
// recognizes and reports the ones it recognizes but must leave alone.
type Modifier interface {
	Name() string
	Description() string

	// Constraint returns a semver range limiting the source SDK versions
	// the modifier applies to. An empty constraint always applies.
	Constraint() string

	Apply(doc *Document) (*Outcome, error)
}
