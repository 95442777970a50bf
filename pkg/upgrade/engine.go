package upgrade

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pravali96/sagemaker-upgrade/pkg/notebook"
	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/pysrc"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

// aliasRule names the pseudo-rule that reports unresolvable imports.
const aliasRule = "aliased-imports"

// Engine orchestrates the upgrade of a single file.
type Engine struct {
	registry    *Registry
	logger      *observability.Logger
	fromVersion *semver.Version
}

// NewEngine creates an engine over the given registry. A nil logger
// silences engine logging.
func NewEngine(registry *Registry, logger *observability.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = observability.NewLogger(observability.ErrorLevel, io.Discard)
	}
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the engine's modifier registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// SetFromVersion gates modifiers on the SDK version the code is being
// upgraded from. An empty version disables gating.
func (e *Engine) SetFromVersion(version string) error {
	if version == "" {
		e.fromVersion = nil
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid from-version %q: %w", version, err)
	}
	e.fromVersion = v
	return nil
}

// Upgrade rewrites one file's content, choosing notebook or plain source
// handling by file extension.
func (e *Engine) Upgrade(path string, data []byte) ([]byte, *report.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".ipynb") {
		return e.UpgradeNotebook(path, data)
	}
	out, result, err := e.UpgradeSource(path, string(data))
	if err != nil {
		return nil, nil, err
	}
	return []byte(out), result, nil
}

// UpgradeSource rewrites a plain Python source file.
func (e *Engine) UpgradeSource(path, src string) (string, *report.Result, error) {
	result := report.NewResult(path)
	doc := &Document{Path: path, Source: src}

	if err := e.apply(doc, result); err != nil {
		return "", nil, err
	}
	result.Changed = doc.Source != src

	e.logger.WithField("file", path).
		WithField("changes", len(result.Changes)).
		WithField("warnings", len(result.Warnings)).
		Debug("file processed")

	return doc.Source, result, nil
}

// UpgradeNotebook rewrites the eligible code cells of a notebook file.
// Imports are collected across all eligible cells first, so a class
// imported in one cell is still recognized at call sites in later cells.
func (e *Engine) UpgradeNotebook(path string, data []byte) ([]byte, *report.Result, error) {
	result := report.NewResult(path)
	changed := false

	imports := pysrc.ScanImports("")
	if _, err := notebook.Process(data, func(cell int, source string) (string, error) {
		imports.Merge(pysrc.ScanImports(source))
		return source, nil
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to read notebook %s: %w", path, err)
	}

	out, err := notebook.Process(data, func(cell int, source string) (string, error) {
		doc := &Document{Path: path, Source: source, Cell: cell, Imports: imports}
		if err := e.apply(doc, result); err != nil {
			return "", err
		}
		if doc.Source != source {
			changed = true
		}
		return doc.Source, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upgrade notebook %s: %w", path, err)
	}

	result.Changed = changed
	if !changed {
		// Leave an untouched notebook byte-identical rather than
		// re-serialized.
		out = data
	}
	return out, result, nil
}

// apply runs every enabled, version-applicable modifier serially over the
// document, accumulating changes and warnings into result.
func (e *Engine) apply(doc *Document, result *report.Result) error {
	for _, ai := range pysrc.ScanImports(doc.Source).Aliased() {
		result.AddWarning(report.Warning{
			Rule:    aliasRule,
			Line:    ai.Line,
			Cell:    doc.Cell,
			Message: fmt.Sprintf("import %q is aliased or unrecognized; call sites reached through it were not rewritten", ai.Stmt),
		})
	}

	for _, mod := range e.registry.Enabled() {
		applies, err := e.applies(mod)
		if err != nil {
			return err
		}
		if !applies {
			continue
		}

		outcome, err := mod.Apply(doc)
		if err != nil {
			return fmt.Errorf("modifier %s failed on %s: %w", mod.Name(), doc.Path, err)
		}
		doc.Source = outcome.Source
		for _, c := range outcome.Changes {
			c.Cell = doc.Cell
			result.AddChange(c)
		}
		for _, w := range outcome.Warnings {
			w.Cell = doc.Cell
			result.AddWarning(w)
		}
	}

	return nil
}

func (e *Engine) applies(mod Modifier) (bool, error) {
	constraint := mod.Constraint()
	if constraint == "" || e.fromVersion == nil {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("modifier %s has invalid constraint %q: %w", mod.Name(), constraint, err)
	}
	return c.Check(e.fromVersion), nil
}
