package modifiers

import (
	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// KeywordRenameModifier renames keyword arguments on the recognized call
// sites of a fixed set of classes. Positional arguments are never touched
// or reordered.
type KeywordRenameModifier struct {
	BaseModifier
	classes []string
	renames map[string]string
}

// NewKeywordRenameModifier creates a custom keyword rename rule, used for
// renames loaded from a rules file.
func NewKeywordRenameModifier(name, description string, classes []string, renames map[string]string) *KeywordRenameModifier {
	return &KeywordRenameModifier{
		BaseModifier: BaseModifier{
			ModName:        name,
			ModDescription: description,
		},
		classes: classes,
		renames: renames,
	}
}

// NewTrainPrefixParamsModifier renames the train_* estimator keywords to
// their v2 names (train_instance_type to instance_type and so on).
func NewTrainPrefixParamsModifier() *KeywordRenameModifier {
	return &KeywordRenameModifier{
		BaseModifier: BaseModifier{
			ModName:        "train-prefix-params",
			ModDescription: "Rename train_* estimator constructor keywords to their v2 names",
			ModConstraint:  v1Constraint,
		},
		classes: estimatorClasses,
		renames: trainPrefixRenames,
	}
}

// NewEstimatorImageURIModifier renames the estimator image_name keyword
// to image_uri.
func NewEstimatorImageURIModifier() *KeywordRenameModifier {
	return &KeywordRenameModifier{
		BaseModifier: BaseModifier{
			ModName:        "estimator-image-uri",
			ModDescription: "Rename the estimator image_name keyword to image_uri",
			ModConstraint:  v1Constraint,
		},
		classes: estimatorClasses,
		renames: estimatorImageRenames,
	}
}

// NewModelImageURIModifier renames the model image keyword to image_uri.
func NewModelImageURIModifier() *KeywordRenameModifier {
	return &KeywordRenameModifier{
		BaseModifier: BaseModifier{
			ModName:        "model-image-uri",
			ModDescription: "Rename the model image keyword to image_uri",
			ModConstraint:  v1Constraint,
		},
		classes: modelClasses,
		renames: modelImageRenames,
	}
}

// Apply rewrites matching keywords on every recognized call site.
func (m *KeywordRenameModifier) Apply(doc *upgrade.Document) (*upgrade.Outcome, error) {
	src := doc.Source
	changes := make([]report.Change, 0)
	imports := importScope(doc)

	for _, class := range m.classes {
		for _, spelling := range imports.Spellings(class) {
			// Calls are rewritten back to front so earlier offsets stay
			// valid; renames never add or remove newlines, so line
			// numbers are stable throughout.
			calls := pysrc.FindCalls(src, spelling.Text)
			for i := len(calls) - 1; i >= 0; i-- {
				var applied []pysrc.KeywordRename
				src, applied = pysrc.RenameKeywordArgs(src, calls[i], m.renames)
				for _, r := range applied {
					changes = append(changes, report.Change{
						Rule:    m.Name(),
						Kind:    report.KindKeywordRename,
						Line:    pysrc.LineOf(src, r.Offset),
						Old:     r.Old,
						New:     r.New,
						Context: class,
					})
				}
			}
		}
	}

	return &upgrade.Outcome{Source: src, Changes: changes}, nil
}
