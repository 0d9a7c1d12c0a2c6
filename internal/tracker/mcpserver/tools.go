package mcpserver

import (
	"encoding/json"
)

// ToolPrefix is the prefix for all guessr tools
const ToolPrefix = "guessr_"

// ToolDefinition defines a tool for the MCP SDK
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// GetToolDefinitions returns tool definitions for the official MCP SDK
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// 1. Add result
		{
			Name:        ToolPrefix + "add",
			Description: "Record today's share-text result for a game. If the game was already recorded today, the entry is replaced. Pass the raw share text exactly as the game produced it.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id (e.g. 'wordle')"
					},
					"text": {
						"type": "string",
						"description": "The pasted share text"
					},
					"data": {
						"type": "string",
						"description": "Result store path (.json, .db, .sqlite); defaults to ~/.guessr/results.json"
					}
				},
				"required": ["game", "text"]
			}`),
		},

		// 2. List results
		{
			Name:        ToolPrefix + "list",
			Description: "List all stored results for a game, oldest first. Set parsed=true to include the structured fields extracted from each entry.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id"
					},
					"parsed": {
						"type": "boolean",
						"description": "Include parsed fields for each result"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["game"]
			}`),
		},

		// 3. Update result
		{
			Name:        ToolPrefix + "update",
			Description: "Replace the raw text of a stored result, optionally moving it to a new date. Moving onto an occupied date fails rather than overwriting.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id"
					},
					"date": {
						"type": "string",
						"description": "Date of the entry to edit (YYYY-MM-DD)"
					},
					"text": {
						"type": "string",
						"description": "Replacement share text"
					},
					"new_date": {
						"type": "string",
						"description": "Move the entry to this date (YYYY-MM-DD)"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["game", "date", "text"]
			}`),
		},

		// 4. Delete result
		{
			Name:        ToolPrefix + "delete",
			Description: "Delete the result stored for a game on the given date. Deleting an absent entry is a no-op.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id"
					},
					"date": {
						"type": "string",
						"description": "Date to delete (YYYY-MM-DD)"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["game", "date"]
			}`),
		},

		// 5. Rolling average
		{
			Name:        ToolPrefix + "average",
			Description: "Compute a game's rolling average over its trailing window. Failed attempts never count; if every stored result predates the window, the full history is averaged. Without field/days the game's own display settings are used.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id"
					},
					"field": {
						"type": "string",
						"description": "Parsed field to average (default: game's configured field)"
					},
					"days": {
						"type": "integer",
						"description": "Trailing window in days (default: game's configured window)"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["game"]
			}`),
		},

		// 6. Parse without storing
		{
			Name:        ToolPrefix + "parse",
			Description: "Run a game's extraction rules against share text and return the structured fields, without storing anything. Use this to inspect what a result contains or to check a game definition.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"game": {
						"type": "string",
						"description": "Game id"
					},
					"text": {
						"type": "string",
						"description": "The share text to parse"
					}
				},
				"required": ["game", "text"]
			}`),
		},

		// 7. Today's status
		{
			Name:        ToolPrefix + "today",
			Description: "Show which games have a recorded result for today. Hidden games are skipped unless all=true.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"all": {
						"type": "boolean",
						"description": "Include hidden games"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				}
			}`),
		},

		// 8. List games
		{
			Name:        ToolPrefix + "games",
			Description: "List all known games with their ids, display names, and whether each is custom, hidden, or has parsing rules.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				}
			}`),
		},

		// 9. Export backup
		{
			Name:        ToolPrefix + "export",
			Description: "Export all stored results together with the complete resolved game list to a backup file.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"output": {
						"type": "string",
						"description": "Output file path"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["output"]
			}`),
		},

		// 10. Import backup
		{
			Name:        ToolPrefix + "import",
			Description: "Import a backup file. Combined backups replace stored results and merge non-built-in games; schema-only files merge games without touching results. Unrecognized files are rejected without changes.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"input": {
						"type": "string",
						"description": "Input file path"
					},
					"data": {
						"type": "string",
						"description": "Result store path"
					}
				},
				"required": ["input"]
			}`),
		},
	}
}
