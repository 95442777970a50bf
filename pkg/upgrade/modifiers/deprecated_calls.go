package modifiers

import (
	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// DeprecatedCallModifier flags calls whose behavior changed in v2. The
// matcher cannot see receiver types, so it keys on the call shape:
// Session.delete_endpoint took an endpoint name, while the v2 replacement
// Predictor.delete_endpoint takes no arguments.
type DeprecatedCallModifier struct {
	BaseModifier
}

// NewDeprecatedCallsModifier flags deprecated v1 call patterns.
func NewDeprecatedCallsModifier() *DeprecatedCallModifier {
	return &DeprecatedCallModifier{
		BaseModifier: BaseModifier{
			ModName:        "deprecated-calls",
			ModDescription: "Flag calls that are deprecated or behave differently in v2",
			ModConstraint:  v1Constraint,
		},
	}
}

// Apply scans for deprecated call shapes and reports them.
func (m *DeprecatedCallModifier) Apply(doc *upgrade.Document) (*upgrade.Outcome, error) {
	src := doc.Source
	warnings := make([]report.Warning, 0)

	for _, call := range pysrc.FindMethodCalls(src, "delete_endpoint") {
		if !pysrc.CallHasArgs(src, call) {
			continue
		}
		warnings = append(warnings, report.Warning{
			Rule:    m.Name(),
			Line:    call.Line(src),
			Message: "Session.delete_endpoint(name) is deprecated in v2; call delete_endpoint() on the predictor instead",
		})
	}

	return &upgrade.Outcome{Source: src, Warnings: warnings}, nil
}
