package modifiers

import (
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// RegisterDefaultModifiers registers all built-in upgrade rules. Order
// matters: renames and relocations run before the checks that flag what
// remains, so warnings refer to post-rewrite names.
func RegisterDefaultModifiers(registry *upgrade.Registry) {
	// Rewriting rules
	registry.Register(NewTrainPrefixParamsModifier())
	registry.Register(NewEstimatorImageURIModifier())
	registry.Register(NewModelImageURIModifier())
	registry.Register(NewImportRelocationsModifier())
	registry.Register(NewSerdeRelocationsModifier())

	// Reporting-only rules
	registry.Register(NewInertArgumentsModifier())
	registry.Register(NewDeprecatedCallsModifier())
	registry.Register(NewFrameworkVersionModifier())
}

// DefaultModifiers returns the built-in rules in their run order.
func DefaultModifiers() []upgrade.Modifier {
	registry := upgrade.NewRegistry()
	RegisterDefaultModifiers(registry)
	return registry.All()
}
