package modifiers

import (
	"fmt"

	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// InertArgumentModifier flags arguments that are accepted but ignored (or
// rejected) by v2. The tool never removes an argument: dropping one can
// change call semantics when it was load-bearing in v1, so these are
// reported for the caller to resolve.
type InertArgumentModifier struct {
	BaseModifier
}

// inertMethodArgs maps method names to the keyword arguments that became
// inert on them in v2.
var inertMethodArgs = map[string][]string{
	"deploy": {"update_endpoint"},
}

// inertClassArgs maps predictor constructors to the keyword arguments
// that were removed in v2 in favor of serializer/deserializer objects.
var inertClassArgs = []string{"content_type", "accept"}

// NewInertArgumentsModifier flags now-inert arguments without removing them.
func NewInertArgumentsModifier() *InertArgumentModifier {
	return &InertArgumentModifier{
		BaseModifier: BaseModifier{
			ModName:        "inert-arguments",
			ModDescription: "Flag arguments that have no effect in v2 (never removed automatically)",
			ModConstraint:  v1Constraint,
		},
	}
}

// Apply scans for inert arguments and reports them.
func (m *InertArgumentModifier) Apply(doc *upgrade.Document) (*upgrade.Outcome, error) {
	src := doc.Source
	warnings := make([]report.Warning, 0)

	for method, inert := range inertMethodArgs {
		for _, call := range pysrc.FindMethodCalls(src, method) {
			for _, arg := range pysrc.KeywordArgs(src, call) {
				for _, name := range inert {
					if arg.Name == name {
						warnings = append(warnings, report.Warning{
							Rule:    m.Name(),
							Line:    pysrc.LineOf(src, arg.Offset),
							Message: fmt.Sprintf("%s=... on %s() has no effect in v2; remove it manually", name, method),
						})
					}
				}
			}
		}
	}

	imports := importScope(doc)
	for _, class := range predictorClasses {
		for _, spelling := range imports.Spellings(class) {
			for _, call := range pysrc.FindCalls(src, spelling.Text) {
				for _, arg := range pysrc.KeywordArgs(src, call) {
					for _, name := range inertClassArgs {
						if arg.Name == name {
							warnings = append(warnings, report.Warning{
								Rule:    m.Name(),
								Line:    pysrc.LineOf(src, arg.Offset),
								Message: fmt.Sprintf("%s=... was removed from %s in v2; pass a serializer/deserializer object instead", name, class),
							})
						}
					}
				}
			}
		}
	}

	return &upgrade.Outcome{Source: src, Warnings: warnings}, nil
}
