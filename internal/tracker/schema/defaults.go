package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsDoc struct {
	Games []GameSchema `yaml:"games"`
}

var (
	defaultsOnce sync.Once
	defaultGames []GameSchema
	defaultsErr  error
)

// Defaults returns the shipped baseline game list. It is parsed once per
// process; callers receive fresh copies and cannot mutate the baseline.
func Defaults() ([]GameSchema, error) {
	defaultsOnce.Do(func() {
		var doc defaultsDoc
		if err := yaml.Unmarshal(defaultsYAML, &doc); err != nil {
			defaultsErr = fmt.Errorf("failed to parse embedded defaults: %w", err)
			return
		}
		defaultGames = doc.Games
	})
	if defaultsErr != nil {
		return nil, defaultsErr
	}
	return cloneAll(defaultGames), nil
}

// MustDefaults is like Defaults but panics on error. The embedded document
// is covered by tests, so a failure here is a build defect.
func MustDefaults() []GameSchema {
	games, err := Defaults()
	if err != nil {
		panic("schema: " + err.Error())
	}
	return games
}

// LoadOverlay parses a user overlay file (YAML or JSON; YAML is a superset
// here) into a schema list. An empty document yields an empty overlay.
func LoadOverlay(data []byte) ([]GameSchema, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var doc defaultsDoc
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Games != nil {
		return doc.Games, nil
	}
	var games []GameSchema
	if err := yaml.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse games overlay: %w", err)
	}
	return games, nil
}

// MarshalOverlay serializes an overlay for persistence, wrapped in the
// same top-level document shape as the embedded defaults.
func MarshalOverlay(games []GameSchema) ([]byte, error) {
	return yaml.Marshal(defaultsDoc{Games: games})
}
