package modifiers

import (
	"fmt"

	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// FrameworkVersionModifier flags framework estimator calls that omit the
// framework_version or py_version arguments, which became required in v2.
// The correct values depend on the training image the caller intends to
// use, so no default is inserted.
type FrameworkVersionModifier struct {
	BaseModifier
}

// NewFrameworkVersionModifier flags missing required version arguments.
func NewFrameworkVersionModifier() *FrameworkVersionModifier {
	return &FrameworkVersionModifier{
		BaseModifier: BaseModifier{
			ModName:        "framework-version",
			ModDescription: "Flag framework estimators missing the now-required framework_version/py_version",
			ModConstraint:  v1Constraint,
		},
	}
}

// Apply scans framework estimator calls for missing version keywords.
func (m *FrameworkVersionModifier) Apply(doc *upgrade.Document) (*upgrade.Outcome, error) {
	src := doc.Source
	warnings := make([]report.Warning, 0)
	imports := importScope(doc)

	for _, class := range frameworkEstimatorClasses {
		for _, spelling := range imports.Spellings(class) {
			for _, call := range pysrc.FindCalls(src, spelling.Text) {
				present := make(map[string]bool)
				for _, arg := range pysrc.KeywordArgs(src, call) {
					present[arg.Name] = true
				}
				for _, required := range []string{"framework_version", "py_version"} {
					if !present[required] {
						warnings = append(warnings, report.Warning{
							Rule:    m.Name(),
							Line:    call.Line(src),
							Message: fmt.Sprintf("%s requires %s in v2; add it explicitly", class, required),
						})
					}
				}
			}
		}
	}

	return &upgrade.Outcome{Source: src, Warnings: warnings}, nil
}
