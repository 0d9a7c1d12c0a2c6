// Package transfer serializes snapshots for backup and sharing. The
// combined payload carries user results plus the resolved game list;
// the schema-only payload carries just the custom games.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

// CombinedPayload is the full backup format: results plus the complete
// resolved game list at export time, enough to restore exactly.
type CombinedPayload struct {
	UserData        store.AppData       `json:"userData"`
	GameSchemaState []schema.GameSchema `json:"gameSchemaState"`
}

// SchemaPayload carries only custom games, for sharing configuration
// without personal history.
type SchemaPayload struct {
	Games []schema.GameSchema `json:"games"`
}

// ExportCombined builds the combined payload as indented JSON.
func ExportCombined(ctx context.Context, st store.Store, reg *schema.Registry) ([]byte, error) {
	data, err := st.Data(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored results: %w", err)
	}
	payload := CombinedPayload{
		UserData:        data,
		GameSchemaState: reg.Games(),
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return out, nil
}

// ExportSchemas builds the schema-only payload from the registry's
// custom games.
func ExportSchemas(reg *schema.Registry) ([]byte, error) {
	payload := SchemaPayload{Games: reg.Customs()}
	if payload.Games == nil {
		payload.Games = []schema.GameSchema{}
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema export: %w", err)
	}
	return out, nil
}
