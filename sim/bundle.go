package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the YAML-loadable shape of an Engine configuration: a
// top-level struct of optional sub-sections, nil meaning "not set in YAML,
// defer to DefaultConfig()".
type ConfigFile struct {
	Building  *BuildingConfig  `yaml:"building"`
	Scoring   *ScoringConfig   `yaml:"scoring"`
	Priority  *PriorityConfig  `yaml:"priority"`
	Spawner   *SpawnerConfig   `yaml:"spawner"`
	Tick      *TickConfig      `yaml:"tick"`
	Seed      *int64           `yaml:"seed"`
	Scheduler string           `yaml:"scheduler"`
	Validator string           `yaml:"validator"`
}

// LoadConfigFile reads and parses a YAML engine configuration file.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading engine config: %w", err)
	}
	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing engine config: %w", err)
	}
	return &cf, nil
}

// ValidSchedulers is the set of recognized scheduler names.
var ValidSchedulers = map[string]bool{"": true, "greedy": true}

// ValidValidators is the set of recognized request-validator names.
var ValidValidators = map[string]bool{"": true, "strict": true}

// Validate checks that policy names in the file are recognized before
// Merge is applied.
func (cf *ConfigFile) Validate() error {
	if !ValidSchedulers[cf.Scheduler] {
		return fmt.Errorf("unknown scheduler %q", cf.Scheduler)
	}
	if !ValidValidators[cf.Validator] {
		return fmt.Errorf("unknown request validator %q", cf.Validator)
	}
	return nil
}

// Merge overlays the file's present sections onto defaults, producing the
// effective Config. Sections absent from the file (nil pointers) keep the
// default's values — the two-tier YAML-then-flag precedence the CLI relies
// on.
func (cf *ConfigFile) Merge(defaults Config) Config {
	out := defaults
	if cf.Building != nil {
		out.Building = *cf.Building
	}
	if cf.Scoring != nil {
		out.Scoring = *cf.Scoring
	}
	if cf.Priority != nil {
		out.Priority = *cf.Priority
	}
	if cf.Spawner != nil {
		out.Spawner = *cf.Spawner
	}
	if cf.Tick != nil {
		out.Tick = *cf.Tick
	}
	if cf.Seed != nil {
		out.Seed = *cf.Seed
	}
	if cf.Scheduler != "" {
		out.Scheduler = cf.Scheduler
	}
	if cf.Validator != "" {
		out.Validator = cf.Validator
	}
	return out
}
