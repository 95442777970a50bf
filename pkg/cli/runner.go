package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pravali96/sagemaker-upgrade/pkg/audit"
	"github.com/pravali96/sagemaker-upgrade/pkg/config"
	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
)

// runnerOptions are the flag values shared by the root command and the
// batch subcommand. Empty strings fall back to environment configuration.
type runnerOptions struct {
	dryRun      bool
	format      string
	fromVersion string
	rulesFile   string
	auditDB     string
	auditLogDir string
	verbose     bool
}

// runner owns the wired-up engine, audit sinks, and output settings for
// one invocation.
type runner struct {
	engine  *upgrade.Engine
	auditor audit.Logger
	logger  *observability.Logger
	dryRun  bool
	format  string
}

// newRunner merges flags over environment configuration and wires up the
// engine. Callers must Close the runner to flush audit sinks.
func newRunner(opts runnerOptions) (*runner, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.fromVersion != "" {
		cfg.FromVersion = opts.fromVersion
	}
	if opts.rulesFile != "" {
		cfg.RulesFile = opts.rulesFile
	}
	if opts.auditDB != "" {
		cfg.AuditDBPath = opts.auditDB
	}
	if opts.auditLogDir != "" {
		cfg.AuditLogDir = opts.auditLogDir
	}
	if opts.verbose {
		cfg.LogLevel = observability.DebugLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stderr)

	registry := upgrade.NewRegistry()
	modifiers.RegisterDefaultModifiers(registry)
	if cfg.RulesFile != "" {
		rf, err := config.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		if err := rf.ApplyTo(registry); err != nil {
			return nil, err
		}
	}

	engine := upgrade.NewEngine(registry, logger)
	if err := engine.SetFromVersion(cfg.FromVersion); err != nil {
		return nil, err
	}

	auditor, err := buildAuditor(cfg)
	if err != nil {
		return nil, err
	}

	return &runner{
		engine:  engine,
		auditor: auditor,
		logger:  logger,
		dryRun:  opts.dryRun,
		format:  cfg.Format,
	}, nil
}

// buildAuditor wires the configured audit sinks.
func buildAuditor(cfg *config.Config) (audit.Logger, error) {
	sinks := make([]audit.Logger, 0, 2)

	if cfg.AuditLogDir != "" {
		fileCfg := audit.DefaultFileLoggerConfig()
		fileCfg.BasePath = cfg.AuditLogDir
		fl, err := audit.NewFileLogger(fileCfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fl)
	}
	if cfg.AuditDBPath != "" {
		dl, err := audit.OpenDBLogger(cfg.AuditDBPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, dl)
	}

	switch len(sinks) {
	case 0:
		return audit.NopLogger{}, nil
	case 1:
		return sinks[0], nil
	default:
		return audit.NewMultiLogger(sinks...), nil
	}
}

// processFile upgrades one file. In dry-run mode nothing is written and
// outFile is recorded only as the intended destination.
func (r *runner) processFile(inFile, outFile string) (*report.Result, error) {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inFile, err)
	}

	out, result, err := r.engine.Upgrade(inFile, data)
	if err != nil {
		return nil, err
	}
	result.OutFile = outFile

	if !r.dryRun {
		if err := os.WriteFile(outFile, out, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", outFile, err)
		}
	}

	if err := audit.RecordResult(context.Background(), r.auditor, result, outFile); err != nil {
		return nil, fmt.Errorf("failed to record audit trail: %w", err)
	}

	return result, nil
}

// Close flushes the audit sinks.
func (r *runner) Close() error {
	return r.auditor.Close()
}
