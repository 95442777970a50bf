package modifiers

import (
	"fmt"
	"strings"

	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// RelocationModifier rewrites identifiers that moved between v1 and v2:
// the import statements that bind them and the references that use them.
//
// Only two import forms are rewritten: a plain import of the root package
// (references stay fully dotted) and a single-name from-import of the
// symbol itself. From-imports that list several names, or that bind an
// intermediate module, are reported and left alone.
type RelocationModifier struct {
	BaseModifier
	relocations []Relocation
}

// NewImportRelocationsModifier rewrites the class and function moves
// (s3_input to TrainingInput, RealTimePredictor to Predictor, the image
// URI helpers to image_uris.retrieve).
func NewImportRelocationsModifier() *RelocationModifier {
	return &RelocationModifier{
		BaseModifier: BaseModifier{
			ModName:        "import-relocations",
			ModDescription: "Rewrite classes and functions that moved to new modules in v2",
			ModConstraint:  v1Constraint,
		},
		relocations: importRelocations,
	}
}

// NewSerdeRelocationsModifier rewrites the serializer and deserializer
// singletons to their v2 class instantiations.
func NewSerdeRelocationsModifier() *RelocationModifier {
	return &RelocationModifier{
		BaseModifier: BaseModifier{
			ModName:        "serde-relocations",
			ModDescription: "Replace serializer/deserializer singletons with their v2 classes",
			ModConstraint:  v1Constraint,
		},
		relocations: serdeRelocations,
	}
}

// Apply rewrites every recognized relocation in the document.
func (m *RelocationModifier) Apply(doc *upgrade.Document) (*upgrade.Outcome, error) {
	src := doc.Source
	changes := make([]report.Change, 0)
	warnings := make([]report.Warning, 0)

	for _, rel := range m.relocations {
		// The whole-file scope resolves spellings whose import lives in
		// another notebook cell; the local scan is what decides whether
		// the import statement itself is in this document to rewrite.
		local := pysrc.ScanImports(src)
		scope := local
		if doc.Imports != nil {
			scope = doc.Imports
		}
		for _, spelling := range scope.Spellings(rel.Old) {
			switch spelling.Kind {
			case pysrc.SpellingDotted:
				var refs []pysrc.Reference
				src, refs = pysrc.ReplaceReferences(src, rel.Old, m.replacementText(rel, rel.New))
				for _, ref := range refs {
					changes = append(changes, report.Change{
						Rule: m.Name(),
						Kind: report.KindReferenceRename,
						Line: pysrc.LineOf(src, ref.Offset),
						Old:  rel.Old,
						New:  rel.New,
					})
				}

			case pysrc.SpellingBare:
				oldModule, oldName := splitSymbol(rel.Old)
				newModule, newName := splitSymbol(rel.New)

				if _, multi, line, ok := local.FromBinding(spelling.Text); ok {
					if multi {
						warnings = append(warnings, report.Warning{
							Rule:    m.Name(),
							Line:    line,
							Message: fmt.Sprintf("%s moved to %s, but its import lists multiple names; not rewritten", rel.Old, rel.New),
						})
						continue
					}

					rewritten, ok := pysrc.RewriteFromImport(src, line, oldModule, oldName, newModule, newName)
					if !ok {
						continue
					}
					src = rewritten
					changes = append(changes, report.Change{
						Rule: m.Name(),
						Kind: report.KindImportRelocation,
						Line: line,
						Old:  rel.Old,
						New:  rel.New,
					})
				} else {
					// The import lives in another cell. That cell rewrites
					// the statement (or warns); here only the references
					// can be updated, and only when the binding is clean.
					if _, multi, _, ok := scope.FromBinding(spelling.Text); !ok || multi {
						continue
					}
				}

				if oldName == newName && !rel.Instantiate {
					continue
				}
				var refs []pysrc.Reference
				src, refs = pysrc.ReplaceReferences(src, spelling.Text, m.replacementText(rel, newName))
				for _, ref := range refs {
					changes = append(changes, report.Change{
						Rule: m.Name(),
						Kind: report.KindReferenceRename,
						Line: pysrc.LineOf(src, ref.Offset),
						Old:  oldName,
						New:  newName,
					})
				}

			case pysrc.SpellingPrefixed:
				// Warn once, in the document that holds the binding, so a
				// notebook does not repeat the warning for every cell.
				base := spelling.Text
				if idx := strings.IndexByte(base, '.'); idx >= 0 {
					base = base[:idx]
				}
				if _, _, _, ok := local.FromBinding(base); !ok {
					continue
				}
				warnings = append(warnings, report.Warning{
					Rule:    m.Name(),
					Line:    spelling.ImportLine,
					Message: fmt.Sprintf("%s moved to %s, but it is reached through a module binding (%s); not rewritten", rel.Old, rel.New, spelling.Text),
				})
			}
		}
	}

	return &upgrade.Outcome{Source: src, Changes: changes, Warnings: warnings}, nil
}

func (m *RelocationModifier) replacementText(rel Relocation, base string) string {
	if rel.Instantiate {
		return base + "()"
	}
	return base
}

// splitSymbol splits a dotted symbol into its module path and final name.
func splitSymbol(symbol string) (module, name string) {
	idx := strings.LastIndexByte(symbol, '.')
	if idx < 0 {
		return "", symbol
	}
	return symbol[:idx], symbol[idx+1:]
}
