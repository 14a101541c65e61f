package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	// rulesDir is the per-folder override directory at the scan root.
	rulesDir = ".worklog"

	// rulesFile is the rules override file name inside rulesDir.
	rulesFile = "scan.yaml"
)

// Rules control which paths the change probe inspects.
type Rules struct {
	// Include lists glob patterns relative to a project root. A project
	// counts as changed when any entry matched by any pattern qualifies.
	Include []string `yaml:"include"`

	// Exclude lists directory names skipped during pattern expansion.
	// An excluded directory's subtree is never entered and the directory
	// itself is never timestamp-checked.
	Exclude []string `yaml:"exclude"`
}

// DefaultRules returns the conventional change surface of a project:
// source, tests, git metadata, and top-level docs.
func DefaultRules() Rules {
	return Rules{
		Include: []string{"src/**", "tests/**", ".git/*", "*.md"},
		Exclude: []string{"node_modules", ".git"},
	}
}

// LoadRules reads the rules override from root/.worklog/scan.yaml.
// Returns nil if the file doesn't exist (no override configured).
func LoadRules(root string) (*Rules, error) {
	path := filepath.Join(root, rulesDir, rulesFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	return &rules, nil
}

// LoadAndMergeRules loads the per-folder override merged over the
// defaults. A field left empty in the override keeps its default.
func LoadAndMergeRules(root string) (Rules, error) {
	override, err := LoadRules(root)
	if err != nil {
		return Rules{}, err
	}

	rules := DefaultRules()
	if override == nil {
		return rules, nil
	}
	if len(override.Include) > 0 {
		rules.Include = override.Include
	}
	if len(override.Exclude) > 0 {
		rules.Exclude = override.Exclude
	}
	return rules, nil
}

// excluded reports whether a directory name is skipped during expansion.
func (r Rules) excluded(name string) bool {
	return slices.Contains(r.Exclude, name)
}
