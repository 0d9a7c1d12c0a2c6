// Package schema implements the game schema data model and the registry
// that merges shipped defaults with user-defined games.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MappingType governs how a regex match (or its absence) is coerced into a
// field value.
type MappingType string

const (
	// TypeNumber parses the raw value as a floating point number after
	// stripping thousands-separator commas.
	TypeNumber MappingType = "number"
	// TypeCount counts occurrences across the whole raw text, independent
	// of whether the extractor's primary match succeeded.
	TypeCount MappingType = "count"
	// TypeBoolean assigns the mapping's explicit value, or true when the
	// extractor matched and no value is given.
	TypeBoolean MappingType = "boolean"
	// TypeEnum tests the raw value against ordered pattern/label pairs.
	TypeEnum MappingType = "enum"
)

// Valid reports whether t is one of the known mapping types.
func (t MappingType) Valid() bool {
	switch t {
	case TypeNumber, TypeCount, TypeBoolean, TypeEnum:
		return true
	}
	return false
}

// CompletionStateField is the reserved field name carrying a game's
// success/failure outcome.
const CompletionStateField = "CompletionState"

// GameSchema describes one tracked game: identity, display metadata and the
// optional declarative extraction rules.
type GameSchema struct {
	ID                 string           `yaml:"id" json:"id"`
	Name               string           `yaml:"name" json:"name"`
	URL                string           `yaml:"url" json:"url"`
	ResultParsingRules *ParsingRules    `yaml:"result_parsing_rules,omitempty" json:"result_parsing_rules,omitempty"`
	AverageDisplay     *AverageDisplay  `yaml:"average_display,omitempty" json:"average_display,omitempty"`
	Stats              []Stat           `yaml:"stats,omitempty" json:"stats,omitempty"`
}

// ParsingRules holds the ordered extractor list for a game.
type ParsingRules struct {
	Extractors []Extractor `yaml:"extractors" json:"extractors"`
}

// Extractor is one regex-driven rule within a schema.
type Extractor struct {
	Name                 string    `yaml:"name" json:"name"`
	Regex                string    `yaml:"regex" json:"regex"`
	CaptureGroupsMapping []Mapping `yaml:"capture_groups_mapping" json:"capture_groups_mapping"`
}

// Mapping describes how a match becomes a field value.
type Mapping struct {
	TargetFieldName string      `yaml:"target_field_name" json:"target_field_name"`
	GroupIndex      *int        `yaml:"group_index,omitempty" json:"group_index,omitempty"`
	Type            MappingType `yaml:"type" json:"type"`
	// Value carries the explicit truth value for boolean mappings and an
	// optional literal for number mappings (e.g. a fixed 0 on failure).
	Value       any        `yaml:"value,omitempty" json:"value,omitempty"`
	CountEmojis []string   `yaml:"count_emojis,omitempty" json:"count_emojis,omitempty"`
	Transform   string     `yaml:"transform,omitempty" json:"transform,omitempty"`
	Values      EnumValues `yaml:"values,omitempty" json:"values,omitempty"`
}

// BoolValue returns the mapping's explicit boolean value, if any.
func (m *Mapping) BoolValue() (bool, bool) {
	b, ok := m.Value.(bool)
	return b, ok
}

// IsCompletionState reports whether this mapping targets the completion
// state field as a boolean.
func (m *Mapping) IsCompletionState() bool {
	return m.Type == TypeBoolean && m.TargetFieldName == CompletionStateField
}

// EnumValue is one pattern/label pair of an enum mapping.
type EnumValue struct {
	Pattern string
	Label   string
}

// EnumValues preserves the authored order of enum pattern/label pairs.
// It accepts both the original object form ({"pattern": "label", ...}) and
// an explicit list form; object key order is kept.
type EnumValues []EnumValue

// UnmarshalJSON decodes either an ordered object or a pair list.
func (ev *EnumValues) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*ev = nil
		return nil
	}
	if trimmed[0] == '[' {
		var pairs []struct {
			Pattern string `json:"pattern"`
			Label   string `json:"label"`
		}
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return err
		}
		out := make(EnumValues, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, EnumValue{Pattern: p.Pattern, Label: p.Label})
		}
		*ev = out
		return nil
	}

	// Object form: walk tokens so key order survives.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("enum values: expected object or array")
	}
	var out EnumValues
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var label string
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("enum values: label for %q: %w", key, err)
		}
		out = append(out, EnumValue{Pattern: key, Label: label})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ev = out
	return nil
}

// MarshalJSON emits the object form in authored order.
func (ev EnumValues) MarshalJSON() ([]byte, error) {
	if ev == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ev {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Pattern)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes an ordered YAML mapping (or pair list) of enum values.
func (ev *EnumValues) UnmarshalYAML(data []byte) error {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err == nil {
		out := make(EnumValues, 0, len(ms))
		for _, item := range ms {
			key := fmt.Sprintf("%v", item.Key)
			label := fmt.Sprintf("%v", item.Value)
			out = append(out, EnumValue{Pattern: key, Label: label})
		}
		*ev = out
		return nil
	}
	var pairs []struct {
		Pattern string `yaml:"pattern"`
		Label   string `yaml:"label"`
	}
	if err := yaml.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(EnumValues, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, EnumValue{Pattern: p.Pattern, Label: p.Label})
	}
	*ev = out
	return nil
}

// MarshalYAML emits an ordered mapping.
func (ev EnumValues) MarshalYAML() ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(ev))
	for _, p := range ev {
		ms = append(ms, yaml.MapItem{Key: p.Pattern, Value: p.Label})
	}
	return yaml.Marshal(ms)
}

// AverageDisplay configures the rolling average shown for a game.
type AverageDisplay struct {
	Field    string `yaml:"field" json:"field"`
	Template string `yaml:"template" json:"template"`
	Days     int    `yaml:"days" json:"days"`
}

// Stat documents a derived field. Informational only; the engine never
// consults it.
type Stat struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Clone returns a deep copy of the schema.
func (g GameSchema) Clone() GameSchema {
	out := g
	if g.ResultParsingRules != nil {
		rules := ParsingRules{Extractors: make([]Extractor, len(g.ResultParsingRules.Extractors))}
		for i, ex := range g.ResultParsingRules.Extractors {
			cp := ex
			cp.CaptureGroupsMapping = make([]Mapping, len(ex.CaptureGroupsMapping))
			for j, m := range ex.CaptureGroupsMapping {
				mc := m
				if m.GroupIndex != nil {
					gi := *m.GroupIndex
					mc.GroupIndex = &gi
				}
				if m.CountEmojis != nil {
					mc.CountEmojis = append([]string(nil), m.CountEmojis...)
				}
				if m.Values != nil {
					mc.Values = append(EnumValues(nil), m.Values...)
				}
				cp.CaptureGroupsMapping[j] = mc
			}
			rules.Extractors[i] = cp
		}
		out.ResultParsingRules = &rules
	}
	if g.AverageDisplay != nil {
		ad := *g.AverageDisplay
		out.AverageDisplay = &ad
	}
	if g.Stats != nil {
		out.Stats = append([]Stat(nil), g.Stats...)
	}
	return out
}
