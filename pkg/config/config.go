// Package config holds the upgrade tool's configuration: environment
// driven defaults plus an optional YAML rules file that enables,
// disables, or extends the built-in modifiers.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

// Config holds the tool's configuration.
type Config struct {
	// LogLevel controls structured logging on stderr.
	LogLevel observability.LogLevel

	// Format selects the report output format (text or json).
	Format string

	// FromVersion is the SDK version the code is being upgraded from,
	// used to gate version-constrained modifiers. Empty disables gating.
	FromVersion string

	// AuditLogDir, when set, enables the JSON-lines audit trail.
	AuditLogDir string

	// AuditDBPath, when set, enables the SQLite audit trail.
	AuditDBPath string

	// RulesFile, when set, points at a YAML rules file.
	RulesFile string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogLevel:    observability.ParseLogLevel(getEnv("SAGEMAKER_UPGRADE_LOG_LEVEL", "info")),
		Format:      getEnv("SAGEMAKER_UPGRADE_FORMAT", report.FormatText),
		FromVersion: getEnv("SAGEMAKER_UPGRADE_FROM_VERSION", ""),
		AuditLogDir: getEnv("SAGEMAKER_UPGRADE_AUDIT_LOG_DIR", ""),
		AuditDBPath: getEnv("SAGEMAKER_UPGRADE_AUDIT_DB", ""),
		RulesFile:   getEnv("SAGEMAKER_UPGRADE_RULES_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Format {
	case report.FormatText, report.FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	if c.FromVersion != "" {
		if _, err := semver.NewVersion(c.FromVersion); err != nil {
			return fmt.Errorf("invalid from-version %q: %w", c.FromVersion, err)
		}
	}

	return nil
}

// getEnv returns an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
