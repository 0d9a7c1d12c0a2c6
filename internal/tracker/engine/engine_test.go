package engine

import (
	"errors"
	"testing"

	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
)

func intPtr(i int) *int { return &i }

// wordleLikeSchema builds a schema with explicit success/failure
// completion patterns plus an attempts extractor.
func wordleLikeSchema() *schema.GameSchema {
	return &schema.GameSchema{
		ID:   "wordle-like",
		Name: "Wordle Like",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "success",
					Regex: `\d/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: true},
					},
				},
				{
					Name:  "failure",
					Regex: `X/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: false},
					},
				},
				{
					Name:  "attempts",
					Regex: `(\d)/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Attempts", Type: schema.TypeNumber, GroupIndex: intPtr(1)},
					},
				},
			},
		},
	}
}

func TestParseSchemaSuccessAndFailure(t *testing.T) {
	g := wordleLikeSchema()

	t.Run("success line yields attempts and true state", func(t *testing.T) {
		result, err := ParseSchema(g, "Wordle 1,234 3/6")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result["Attempts"]; got != float64(3) {
			t.Errorf("expected Attempts 3, got %v", got)
		}
		if got := result[schema.CompletionStateField]; got != true {
			t.Errorf("expected CompletionState true, got %v", got)
		}
	})

	t.Run("failure line yields false state and no attempts", func(t *testing.T) {
		result, err := ParseSchema(g, "Wordle 1,235 X/6")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result[schema.CompletionStateField]; got != false {
			t.Errorf("expected CompletionState false, got %v", got)
		}
		if _, present := result["Attempts"]; present {
			t.Error("Attempts should be absent on a failed result")
		}
	})

	t.Run("unrelated text yields empty result", func(t *testing.T) {
		result, err := ParseSchema(g, "something else entirely")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected empty result, got %v", result)
		}
	})

	t.Run("parsing is deterministic", func(t *testing.T) {
		first, err := ParseSchema(g, "Wordle 1,234 3/6")
		if err != nil {
			t.Fatalf("first parse: %v", err)
		}
		second, err := ParseSchema(g, "Wordle 1,234 3/6")
		if err != nil {
			t.Fatalf("second parse: %v", err)
		}
		if len(first) != len(second) {
			t.Fatalf("results differ in size: %v vs %v", first, second)
		}
		for k, v := range first {
			if second[k] != v {
				t.Errorf("field %s differs: %v vs %v", k, v, second[k])
			}
		}
	})
}

func TestParseSchemaEmojiCount(t *testing.T) {
	g := &schema.GameSchema{
		ID: "emoji-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "squares",
					Regex: `🎥`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Squares", Type: schema.TypeCount, CountEmojis: []string{"🟥", "🟩"}},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "🎥 🟥 🟥 🟩 ⬛ ⬛")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Squares"]; got != float64(3) {
		t.Errorf("expected 3 counted emojis, got %v", got)
	}
}

func TestCountIndependentOfPrimaryMatch(t *testing.T) {
	// The count mapping must fire even when the extractor's own regex
	// never matches the text.
	g := &schema.GameSchema{
		ID: "count-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "guesses",
					Regex: `never-matches-\d+`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Greens", Type: schema.TypeCount, CountEmojis: []string{"🟩"}},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "🟩🟩⬛🟩")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Greens"]; got != float64(3) {
		t.Errorf("expected count 3, got %v", got)
	}
}

func TestCountWithoutEmojisCountsRegexMatches(t *testing.T) {
	g := &schema.GameSchema{
		ID: "regex-count",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "lines",
					Regex: `guess`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Guesses", Type: schema.TypeCount},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "guess one\nguess two\nguess three")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Guesses"]; got != float64(3) {
		t.Errorf("expected 3 regex matches, got %v", got)
	}
}

func TestCompletionStateMisconfiguration(t *testing.T) {
	g := &schema.GameSchema{
		ID: "broken-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "state",
					Regex: `done`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean},
					},
				},
			},
		},
	}

	_, err := ParseSchema(g, "done")
	if err == nil {
		t.Fatal("expected configuration error for valueless CompletionState mapping")
	}
	var cfgErr *schema.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.GameID != "broken-game" {
		t.Errorf("error should name the game, got %q", cfgErr.GameID)
	}
}

func TestCompletionStateMixedValuelessMapping(t *testing.T) {
	// One mapping has an explicit value, the other does not; the
	// valueless one must still be rejected rather than silently dropped.
	g := &schema.GameSchema{
		ID: "half-broken",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "success",
					Regex: `(\d)/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: true},
					},
				},
				{
					Name:  "failure",
					Regex: `X/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean},
					},
				},
			},
		},
	}

	_, err := ParseSchema(g, "X/6")
	if err == nil {
		t.Fatal("expected configuration error for the valueless CompletionState mapping")
	}
	var cfgErr *schema.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.GameID != "half-broken" {
		t.Errorf("error should name the game, got %q", cfgErr.GameID)
	}
}

func TestCompletionStateOnlySuccessPatterns(t *testing.T) {
	g := &schema.GameSchema{
		ID: "success-only",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "won",
					Regex: `Victory`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: true},
					},
				},
			},
		},
	}

	t.Run("match means success", func(t *testing.T) {
		result, err := ParseSchema(g, "Victory!")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result[schema.CompletionStateField]; got != true {
			t.Errorf("expected true, got %v", got)
		}
	})

	t.Run("no match means failure", func(t *testing.T) {
		result, err := ParseSchema(g, "Defeat")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result[schema.CompletionStateField]; got != false {
			t.Errorf("expected false, got %v", got)
		}
	})
}

func TestCompletionStateOnlyFailurePatterns(t *testing.T) {
	g := &schema.GameSchema{
		ID: "failure-only",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "lost",
					Regex: `X/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: false},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "Wordle 3/6")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result[schema.CompletionStateField]; got != true {
		t.Errorf("absence of the failure pattern should mean success, got %v", got)
	}
}

func TestCompletionStateAmbiguousOmitted(t *testing.T) {
	g := wordleLikeSchema()

	// Neither the success nor the failure pattern matches.
	result, err := ParseSchema(g, "no score line here")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if _, present := result[schema.CompletionStateField]; present {
		t.Error("CompletionState should be omitted when both pattern sets miss")
	}
}

func TestNumberTransform(t *testing.T) {
	g := &schema.GameSchema{
		ID: "transform-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "score",
					Regex: `Score: (\d+)/(\d+)`,
					CaptureGroupsMapping: []schema.Mapping{
						{
							TargetFieldName: "Percent",
							Type:            schema.TypeNumber,
							GroupIndex:      intPtr(1),
							Transform:       `float(value) / float(groups[2]) * 100`,
						},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "Score: 3/4")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Percent"]; got != float64(75) {
		t.Errorf("expected 75, got %v", got)
	}
}

func TestNumberCommaStripping(t *testing.T) {
	g := &schema.GameSchema{
		ID: "comma-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "points",
					Regex: `([\d,]+) points`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Points", Type: schema.TypeNumber, GroupIndex: intPtr(1)},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "You scored 12,345 points")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Points"]; got != float64(12345) {
		t.Errorf("expected 12345, got %v", got)
	}
}

func TestEnumFirstMatchWins(t *testing.T) {
	g := &schema.GameSchema{
		ID: "enum-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "rating",
					Regex: `Rating: (\S+)`,
					CaptureGroupsMapping: []schema.Mapping{
						{
							TargetFieldName: "Rating",
							Type:            schema.TypeEnum,
							GroupIndex:      intPtr(1),
							Values: schema.EnumValues{
								{Pattern: `^gold|🥇$`, Label: "Gold"},
								{Pattern: `^silver|🥈$`, Label: "Silver"},
							},
						},
					},
				},
			},
		},
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"first pattern", "Rating: gold", "Gold"},
		{"second pattern", "Rating: silver", "Silver"},
		{"no match passes raw through", "Rating: bronze", "bronze"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseSchema(g, tt.text)
			if err != nil {
				t.Fatalf("ParseSchema returned error: %v", err)
			}
			if got := result["Rating"]; got != tt.want {
				t.Errorf("expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestBooleanDefaultsTrueOnMatch(t *testing.T) {
	g := &schema.GameSchema{
		ID: "bool-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "hardmode",
					Regex: `\*$`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "HardMode", Type: schema.TypeBoolean},
					},
				},
			},
		},
	}

	t.Run("match sets true", func(t *testing.T) {
		result, err := ParseSchema(g, "Wordle 4/6*")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result["HardMode"]; got != true {
			t.Errorf("expected true, got %v", got)
		}
	})

	t.Run("miss leaves field absent", func(t *testing.T) {
		result, err := ParseSchema(g, "Wordle 4/6")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if _, present := result["HardMode"]; present {
			t.Error("HardMode should be absent when pattern misses")
		}
	})
}

func TestLookaheadPatterns(t *testing.T) {
	// Shipped rules use ECMAScript-style lookaheads; the engine must
	// accept them.
	g := &schema.GameSchema{
		ID: "lookahead-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "perfect",
					Regex: `^(?=.*🟨🟨🟨🟨)(?=.*🟩🟩🟩🟩).*$`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: schema.CompletionStateField, Type: schema.TypeBoolean, Value: true},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "Puzzle #42\n🟨🟨🟨🟨\n🟩🟩🟩🟩")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result[schema.CompletionStateField]; got != true {
		t.Errorf("expected lookahead pattern to match, got %v", got)
	}
}

func TestEngineUnknownGame(t *testing.T) {
	reg := schema.NewRegistry(nil, nil)
	eng := New(reg)

	result, err := eng.Parse("no-such-game", "whatever")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty result for unknown game, got %v", result)
	}
}

func TestEngineUsesRegistrySchemas(t *testing.T) {
	reg := schema.NewRegistry([]schema.GameSchema{*wordleLikeSchema()}, nil)
	eng := New(reg)

	result, err := eng.Parse("wordle-like", "Wordle 99 5/6")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := result["Attempts"]; got != float64(5) {
		t.Errorf("expected Attempts 5, got %v", got)
	}
}

func TestGroupIndexOutOfRange(t *testing.T) {
	g := &schema.GameSchema{
		ID: "oob-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "score",
					Regex: `(\d)/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Missing", Type: schema.TypeNumber, GroupIndex: intPtr(5)},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "3/6")
	if err != nil {
		t.Fatalf("out-of-range group index must not be an error: %v", err)
	}
	if _, present := result["Missing"]; present {
		t.Error("field should be absent when the capture group does not exist")
	}
}

func TestTransformNilLeavesFieldUnset(t *testing.T) {
	g := &schema.GameSchema{
		ID: "nil-transform",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "score",
					Regex: `(\d)/6`,
					CaptureGroupsMapping: []schema.Mapping{
						{
							TargetFieldName: "Attempts",
							Type:            schema.TypeNumber,
							GroupIndex:      intPtr(1),
							Transform:       `value == "7" ? nil : value`,
						},
					},
				},
			},
		},
	}

	t.Run("transform passes value", func(t *testing.T) {
		result, err := ParseSchema(g, "3/6")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if got := result["Attempts"]; got != float64(3) {
			t.Errorf("expected 3, got %v", got)
		}
	})

	t.Run("transform returns nil", func(t *testing.T) {
		result, err := ParseSchema(g, "7/6")
		if err != nil {
			t.Fatalf("ParseSchema returned error: %v", err)
		}
		if _, present := result["Attempts"]; present {
			t.Error("nil transform result should leave the field unset")
		}
	})
}

func TestNumberLiteralValue(t *testing.T) {
	g := &schema.GameSchema{
		ID: "literal-game",
		ResultParsingRules: &schema.ParsingRules{
			Extractors: []schema.Extractor{
				{
					Name:  "failed",
					Regex: `X/5`,
					CaptureGroupsMapping: []schema.Mapping{
						{TargetFieldName: "Attempts", Type: schema.TypeNumber, Value: 0},
					},
				},
			},
		},
	}

	result, err := ParseSchema(g, "Waffle X/5")
	if err != nil {
		t.Fatalf("ParseSchema returned error: %v", err)
	}
	if got := result["Attempts"]; got != float64(0) {
		t.Errorf("expected literal 0, got %v", got)
	}
}
