package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, observability.InfoLevel, cfg.LogLevel)
	assert.Equal(t, report.FormatText, cfg.Format)
	assert.Empty(t, cfg.FromVersion)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SAGEMAKER_UPGRADE_LOG_LEVEL", "debug")
	t.Setenv("SAGEMAKER_UPGRADE_FORMAT", "json")
	t.Setenv("SAGEMAKER_UPGRADE_FROM_VERSION", "1.72.0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, observability.DebugLevel, cfg.LogLevel)
	assert.Equal(t, report.FormatJSON, cfg.Format)
	assert.Equal(t, "1.72.0", cfg.FromVersion)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("SAGEMAKER_UPGRADE_FORMAT", "xml")
	_, err := LoadConfig()
	assert.Error(t, err)

	os.Unsetenv("SAGEMAKER_UPGRADE_FORMAT")
	t.Setenv("SAGEMAKER_UPGRADE_FROM_VERSION", "one.two")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `disable:
  - framework-version
keyword_renames:
  - name: wrapper-params
    description: Rename wrapper constructor keywords
    classes:
      - sagemaker.estimator.Estimator
    renames:
      old_param: new_param
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rf, err := LoadRulesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"framework-version"}, rf.Disable)
	require.Len(t, rf.KeywordRenames, 1)
	assert.Equal(t, "new_param", rf.KeywordRenames[0].Renames["old_param"])
}

func TestLoadRulesFileInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("keyword_renames:\n  - classes: []\n"), 0644))
	_, err = LoadRulesFile(bad)
	assert.Error(t, err)
}

func TestRulesFileApplyTo(t *testing.T) {
	registry := upgrade.NewRegistry()
	modifiers.RegisterDefaultModifiers(registry)
	total := len(registry.Enabled())

	rf := &RulesFile{
		Disable: []string{"framework-version"},
		KeywordRenames: []KeywordRenameRule{
			{
				Name:    "wrapper-params",
				Classes: []string{"sagemaker.estimator.Estimator"},
				Renames: map[string]string{"old_param": "new_param"},
			},
		},
	}
	require.NoError(t, rf.ApplyTo(registry))

	assert.Len(t, registry.Enabled(), total) // one disabled, one added
	_, ok := registry.Get("wrapper-params")
	assert.True(t, ok)
}

func TestRulesFileApplyToUnknownRule(t *testing.T) {
	registry := upgrade.NewRegistry()
	rf := &RulesFile{Disable: []string{"nope"}}
	assert.Error(t, rf.ApplyTo(registry))
}
