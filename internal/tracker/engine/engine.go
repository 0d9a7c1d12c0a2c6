// Package engine implements the rule-driven extraction engine. It is a
// pure function of (schema, raw text): no state, no caching of parsed
// values, so schema edits retroactively reinterpret all stored history.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"

	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
)

// Result is the flat field → value mapping produced for one raw-text blob.
// Values are float64, bool or string.
type Result map[string]any

// Engine evaluates a registry's schemas against pasted share text.
type Engine struct {
	reg *schema.Registry
}

// New creates an engine bound to a registry. The registry is shared by
// reference; callers own its lifecycle.
func New(reg *schema.Registry) *Engine {
	return &Engine{reg: reg}
}

// Parse resolves gameID through the registry and extracts fields from
// rawText. An unknown game, or one without parsing rules, yields an empty
// result: raw text for untracked games is stored but never parsed.
func (e *Engine) Parse(gameID, rawText string) (Result, error) {
	g, ok := e.reg.Lookup(gameID)
	if !ok {
		log.Debug().Str("game", gameID).Msg("parse requested for unregistered game")
		return Result{}, nil
	}
	return ParseSchema(g, rawText)
}

// ParseSchema runs every extractor of g against rawText in schema order.
// Deterministic and side-effect-free; calling it twice yields identical
// results.
func ParseSchema(g *schema.GameSchema, rawText string) (Result, error) {
	result := Result{}
	if g.ResultParsingRules == nil {
		return result, nil
	}

	if err := checkCompletionConfig(g); err != nil {
		return nil, err
	}

	for _, ex := range g.ResultParsingRules.Extractors {
		re, err := compilePattern(ex.Regex)
		if err != nil {
			return nil, &schema.ConfigError{GameID: g.ID, Detail: fmt.Sprintf("extractor %q has invalid regex %q", ex.Name, ex.Regex), Cause: err}
		}

		var match *regexp2.Match
		if needsMatch(ex) {
			match, err = re.FindStringMatch(rawText)
			if err != nil {
				return nil, &schema.ConfigError{GameID: g.ID, Detail: fmt.Sprintf("extractor %q failed to execute", ex.Name), Cause: err}
			}
		}

		for i := range ex.CaptureGroupsMapping {
			m := &ex.CaptureGroupsMapping[i]

			// CompletionState booleans are resolved across all extractors
			// afterwards; the generic pass never sets the field.
			if m.IsCompletionState() {
				continue
			}

			if m.Type == schema.TypeCount {
				// Count mappings scan the whole raw text and never depend
				// on whether the primary match succeeded.
				if v, ok := countValue(g.ID, re, m, rawText); ok {
					result[m.TargetFieldName] = v
				}
				continue
			}

			if match == nil {
				continue // parse miss: field absent, not an error
			}
			if v, ok := mappedValue(g.ID, m, match, rawText); ok {
				result[m.TargetFieldName] = v
			}
		}
	}

	if state, ok, err := resolveCompletionState(g, rawText); err != nil {
		return nil, err
	} else if ok {
		result[schema.CompletionStateField] = state
	}

	return result, nil
}

// needsMatch reports whether any mapping of the extractor consumes the
// single primary match. Extractors whose mappings are all counts (or
// completion-state booleans, tested separately) skip the exec entirely.
func needsMatch(ex schema.Extractor) bool {
	for _, m := range ex.CaptureGroupsMapping {
		if m.Type != schema.TypeCount && !m.IsCompletionState() {
			return true
		}
	}
	return false
}

// countValue computes a count-type mapping: an explicit emoji list counts
// literal substring occurrences; otherwise the extractor's own regex is
// counted globally across the raw text.
func countValue(gameID string, re *regexp2.Regexp, m *schema.Mapping, rawText string) (any, bool) {
	count := 0
	if len(m.CountEmojis) > 0 {
		for _, emoji := range m.CountEmojis {
			count += strings.Count(rawText, emoji)
		}
	} else {
		match, err := re.FindStringMatch(rawText)
		for err == nil && match != nil {
			count++
			match, err = re.FindNextMatch(match)
		}
	}

	if m.Transform == "" {
		return float64(count), true
	}
	out, err := runTransform(m.Transform, transformEnv(count, nil, rawText))
	if err != nil {
		log.Warn().Err(err).Str("game", gameID).Str("field", m.TargetFieldName).Msg("count transform failed")
		return nil, false
	}
	return coerceNumeric(gameID, m, out)
}

// mappedValue resolves and coerces a non-count mapping against a
// successful primary match.
func mappedValue(gameID string, m *schema.Mapping, match *regexp2.Match, rawText string) (any, bool) {
	groups := captureStrings(match)

	raw, ok := rawValue(gameID, m, match, groups)
	if !ok {
		return nil, false
	}

	switch m.Type {
	case schema.TypeNumber:
		if lit, isLit := raw.(float64); isLit {
			return lit, true
		}
		s := raw.(string)
		if m.Transform != "" {
			out, err := runTransform(m.Transform, transformEnv(s, groups, rawText))
			if err != nil {
				log.Warn().Err(err).Str("game", gameID).Str("field", m.TargetFieldName).Msg("transform failed")
				return nil, false
			}
			return coerceNumeric(gameID, m, out)
		}
		return parseNumber(gameID, m, s)

	case schema.TypeBoolean:
		// Non-CompletionState booleans: explicit value wins, otherwise a
		// successful match means true.
		if b, has := m.BoolValue(); has {
			return b, true
		}
		return true, true

	case schema.TypeEnum:
		s, _ := raw.(string)
		return enumValue(m, s), true
	}

	log.Warn().Str("game", gameID).Str("type", string(m.Type)).Msg("unhandled mapping type")
	return nil, false
}

// rawValue picks the mapping's source value: an explicit literal, the
// requested capture group, or the whole match text.
func rawValue(gameID string, m *schema.Mapping, match *regexp2.Match, groups []string) (any, bool) {
	if b, has := m.BoolValue(); has && m.Type == schema.TypeBoolean {
		return b, true
	}
	if m.Value != nil && m.Type == schema.TypeNumber {
		if f, ok := toFloat(m.Value); ok {
			return f, true
		}
	}
	if m.GroupIndex != nil {
		idx := *m.GroupIndex
		if idx < 0 || idx >= len(groups) {
			log.Warn().Str("game", gameID).Int("group_index", idx).Str("field", m.TargetFieldName).
				Msg("regex matched but capture group not present")
			return nil, false
		}
		return groups[idx], true
	}
	return match.String(), true
}

// enumValue tests the raw value against each pattern in authored order;
// the first match wins and an unmatched value passes through unconverted.
func enumValue(m *schema.Mapping, raw string) string {
	for _, ev := range m.Values {
		re, err := regexp2.Compile(ev.Pattern, regexp2.None)
		if err != nil {
			continue // validation catches this before the engine normally
		}
		if ok, _ := re.MatchString(raw); ok {
			return ev.Label
		}
	}
	return raw
}

// parseNumber strips thousands-separator commas and parses a float.
func parseNumber(gameID string, m *schema.Mapping, s string) (any, bool) {
	cleaned := strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Debug().Str("game", gameID).Str("field", m.TargetFieldName).Str("value", s).Msg("number mapping produced unparseable value")
		return nil, false
	}
	return f, true
}

// coerceNumeric converts a transform result for a numeric mapping. A nil
// result means the transform elected to leave the field unset.
func coerceNumeric(gameID string, m *schema.Mapping, out any) (any, bool) {
	if out == nil {
		return nil, false
	}
	if f, ok := toFloat(out); ok {
		return f, true
	}
	if s, ok := out.(string); ok {
		return parseNumber(gameID, m, s)
	}
	log.Warn().Str("game", gameID).Str("field", m.TargetFieldName).Msgf("transform produced non-numeric %T", out)
	return nil, false
}

// captureStrings flattens a match into indexed capture text; index 0 is
// the whole match. Non-participating groups yield empty strings.
func captureStrings(match *regexp2.Match) []string {
	groups := match.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.String()
	}
	return out
}

// checkCompletionConfig fails fast when any boolean CompletionState
// mapping lacks an explicit value. Hand-edited overlays reach the engine
// without prior validation, so ambiguous completion semantics are caught
// here rather than silently dropped.
func checkCompletionConfig(g *schema.GameSchema) error {
	for _, ex := range g.ResultParsingRules.Extractors {
		for _, m := range ex.CaptureGroupsMapping {
			if !m.IsCompletionState() {
				continue
			}
			if _, ok := m.BoolValue(); !ok {
				return schema.NewConfigError(g.ID, fmt.Sprintf(
					"extractor %q: boolean CompletionState mapping requires an explicit 'value: true' or 'value: false'", ex.Name))
			}
		}
	}
	return nil
}

// resolveCompletionState combines every success and failure pattern across
// all extractors into one three-way outcome. Patterns are tested directly
// against the raw text, independent of per-extractor match state.
func resolveCompletionState(g *schema.GameSchema, rawText string) (state, present bool, err error) {
	var successes, failures []string
	for _, ex := range g.ResultParsingRules.Extractors {
		for _, m := range ex.CaptureGroupsMapping {
			if !m.IsCompletionState() {
				continue
			}
			if b, ok := m.BoolValue(); ok {
				if b {
					successes = append(successes, ex.Regex)
				} else {
					failures = append(failures, ex.Regex)
				}
			}
		}
	}

	if len(successes) == 0 && len(failures) == 0 {
		return false, false, nil // game has no completion concept
	}

	successMatched, err := anyMatches(g.ID, successes, rawText)
	if err != nil {
		return false, false, err
	}
	failureMatched, err := anyMatches(g.ID, failures, rawText)
	if err != nil {
		return false, false, err
	}

	switch {
	case len(successes) > 0 && len(failures) > 0:
		if successMatched {
			return true, true, nil
		}
		if failureMatched {
			return false, true, nil
		}
		log.Warn().Str("game", g.ID).Msg("neither success nor failure patterns matched; completion state omitted")
		return false, false, nil
	case len(successes) > 0:
		// Absence of success is treated as failure.
		return successMatched, true, nil
	default:
		// Absence of failure is treated as success.
		return !failureMatched, true, nil
	}
}

func anyMatches(gameID string, patterns []string, rawText string) (bool, error) {
	for _, p := range patterns {
		re, err := compilePattern(p)
		if err != nil {
			return false, &schema.ConfigError{GameID: gameID, Detail: fmt.Sprintf("invalid CompletionState regex %q", p), Cause: err}
		}
		ok, err := re.MatchString(rawText)
		if err != nil {
			return false, &schema.ConfigError{GameID: gameID, Detail: fmt.Sprintf("CompletionState regex %q failed to execute", p), Cause: err}
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// compilePattern compiles a schema regex with dot-matches-newline,
// matching the ECMAScript 's'-flag semantics the schemas are written for.
func compilePattern(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(pattern, regexp2.Singleline)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
