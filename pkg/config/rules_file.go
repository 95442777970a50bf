package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
)

// RulesFile customizes the modifier set: rules can be disabled by name and
// extra keyword renames can be added for project-specific wrappers around
// the SDK classes.
type RulesFile struct {
	Disable        []string            `yaml:"disable"`
	KeywordRenames []KeywordRenameRule `yaml:"keyword_renames"`
}

// KeywordRenameRule is one custom keyword rename loaded from the rules
// file.
type KeywordRenameRule struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Classes     []string          `yaml:"classes"`
	Renames     map[string]string `yaml:"renames"`
}

// LoadRulesFile reads a YAML rules file.
func LoadRulesFile(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	for i, rule := range rf.KeywordRenames {
		if rule.Name == "" {
			return nil, fmt.Errorf("rules file %s: keyword_renames[%d] has no name", path, i)
		}
		if len(rule.Classes) == 0 || len(rule.Renames) == 0 {
			return nil, fmt.Errorf("rules file %s: rule %s needs classes and renames", path, rule.Name)
		}
	}

	return &rf, nil
}

// ApplyTo disables and registers modifiers on the registry.
func (rf *RulesFile) ApplyTo(registry *upgrade.Registry) error {
	for _, name := range rf.Disable {
		if _, ok := registry.Get(name); !ok {
			return fmt.Errorf("cannot disable unknown rule %q", name)
		}
		registry.Disable(name)
	}

	for _, rule := range rf.KeywordRenames {
		registry.Register(modifiers.NewKeywordRenameModifier(rule.Name, rule.Description, rule.Classes, rule.Renames))
	}

	return nil
}
