package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

// ErrUnrecognizedPayload is returned when the input matches none of
// the supported shapes. Nothing is modified in that case.
var ErrUnrecognizedPayload = errors.New("unrecognized payload shape")

// PayloadKind identifies which supported shape an import matched.
type PayloadKind string

const (
	KindCombined   PayloadKind = "combined"
	KindSchemaOnly PayloadKind = "schemas"
	KindLegacyData PayloadKind = "legacy"
)

// ImportReport summarizes what an import applied.
type ImportReport struct {
	Kind          PayloadKind
	GamesImported int
	ResultsLoaded int
}

// Sniff classifies raw JSON without committing anything.
func Sniff(raw []byte) (PayloadKind, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("%w: not valid JSON", ErrUnrecognizedPayload)
	}
	doc := gjson.ParseBytes(raw)
	switch {
	case doc.Get("userData").Exists() && doc.Get("gameSchemaState").Exists():
		return KindCombined, nil
	case doc.Get("games").IsArray():
		return KindSchemaOnly, nil
	case doc.Get("gameResults").Exists():
		return KindLegacyData, nil
	default:
		return "", fmt.Errorf("%w: expected userData/gameSchemaState, games, or gameResults", ErrUnrecognizedPayload)
	}
}

// Import applies a payload of any supported shape. Validation happens
// before anything is written, so a malformed payload leaves both the
// store and the registry untouched.
func Import(ctx context.Context, raw []byte, st store.Store, reg *schema.Registry) (*ImportReport, error) {
	kind, err := Sniff(raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindCombined:
		var payload CombinedPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode combined payload: %w", err)
		}
		return importCombined(ctx, payload, st, reg)
	case KindSchemaOnly:
		var payload SchemaPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode schema payload: %w", err)
		}
		return importSchemas(payload, reg)
	default:
		var data store.AppData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode result data: %w", err)
		}
		if err := st.ReplaceData(ctx, data); err != nil {
			return nil, err
		}
		return &ImportReport{Kind: KindLegacyData, ResultsLoaded: countResults(data)}, nil
	}
}

// importCombined reconciles the imported game list against the current
// defaults, not the imported ones. Entries whose id matches a current
// default are dropped; the rest merge in as customs.
func importCombined(ctx context.Context, payload CombinedPayload, st store.Store, reg *schema.Registry) (*ImportReport, error) {
	customs := make([]schema.GameSchema, 0, len(payload.GameSchemaState))
	for _, g := range payload.GameSchemaState {
		if reg.IsDefault(g.ID) {
			continue
		}
		if err := schema.Validate(&g); err != nil {
			return nil, fmt.Errorf("imported game %q: %w", g.ID, err)
		}
		customs = append(customs, g)
	}

	if err := st.ReplaceData(ctx, payload.UserData); err != nil {
		return nil, err
	}
	merged := reg.MergeCustoms(customs)
	return &ImportReport{
		Kind:          KindCombined,
		GamesImported: merged,
		ResultsLoaded: countResults(payload.UserData),
	}, nil
}

func importSchemas(payload SchemaPayload, reg *schema.Registry) (*ImportReport, error) {
	for i := range payload.Games {
		if err := schema.Validate(&payload.Games[i]); err != nil {
			return nil, fmt.Errorf("imported game %q: %w", payload.Games[i].ID, err)
		}
	}
	merged := reg.MergeCustoms(payload.Games)
	return &ImportReport{Kind: KindSchemaOnly, GamesImported: merged}, nil
}

func countResults(data store.AppData) int {
	n := 0
	for _, results := range data.GameResults {
		n += len(results)
	}
	return n
}
