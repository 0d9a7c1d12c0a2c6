package schema

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/expr-lang/expr"
)

// Validate checks a schema for authoring bugs: malformed regexes,
// unknown mapping types, transforms that don't compile, and boolean
// CompletionState mappings lacking an explicit value. Intended to run
// before a schema reaches the engine or the overlay file.
func Validate(g *GameSchema) error {
	if g.ID == "" {
		return NewConfigError("(unknown)", "schema has no id")
	}
	if g.ResultParsingRules == nil {
		return nil // untracked game: raw text only
	}

	for _, ex := range g.ResultParsingRules.Extractors {
		if len(ex.CaptureGroupsMapping) == 0 {
			return NewConfigError(g.ID, fmt.Sprintf("extractor %q has no capture_groups_mapping", ex.Name))
		}
		if _, err := regexp2.Compile(ex.Regex, regexp2.Singleline); err != nil {
			return &ConfigError{GameID: g.ID, Detail: fmt.Sprintf("extractor %q has invalid regex %q", ex.Name, ex.Regex), Cause: err}
		}
		for _, m := range ex.CaptureGroupsMapping {
			if !m.Type.Valid() {
				return NewConfigError(g.ID, fmt.Sprintf("extractor %q: unknown mapping type %q", ex.Name, m.Type))
			}
			if m.TargetFieldName == "" {
				return NewConfigError(g.ID, fmt.Sprintf("extractor %q: mapping has no target_field_name", ex.Name))
			}
			if m.IsCompletionState() {
				if _, ok := m.BoolValue(); !ok {
					return NewConfigError(g.ID, fmt.Sprintf(
						"extractor %q: boolean CompletionState mapping requires an explicit value: true or value: false", ex.Name))
				}
			}
			if m.Transform != "" {
				if _, err := expr.Compile(m.Transform); err != nil {
					return &ConfigError{GameID: g.ID, Detail: fmt.Sprintf("extractor %q: transform %q does not compile", ex.Name, m.Transform), Cause: err}
				}
			}
			for _, ev := range m.Values {
				if _, err := regexp2.Compile(ev.Pattern, regexp2.None); err != nil {
					return &ConfigError{GameID: g.ID, Detail: fmt.Sprintf("extractor %q: invalid enum pattern %q", ex.Name, ev.Pattern), Cause: err}
				}
			}
		}
	}
	return nil
}

// ValidateAll validates every schema in the list, returning the first
// offending game's error.
func ValidateAll(games []GameSchema) error {
	for i := range games {
		if err := Validate(&games[i]); err != nil {
			return err
		}
	}
	return nil
}
