package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/engine"
)

var parseCmd = &cobra.Command{
	Use:   "parse <game-id> [result-text]",
	Short: "Parse share text without storing it",
	Long: `Run the extraction rules for a game against pasted share text and show
the fields that come out. Nothing is stored; use this to check a game
definition against real output.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// ParseOutput represents the JSON output of the parse command.
type ParseOutput struct {
	Game   string         `json:"game"`
	Fields map[string]any `json:"fields"`
}

func runParse(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	rawText, err := readResultText(args, 1)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rawText) == "" {
		return tracker.ErrEmptyResult()
	}

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	if _, found := reg.Lookup(gameID); !found {
		return tracker.ErrGameUnknown(gameID)
	}

	eng := engine.New(reg)
	parsed, err := eng.Parse(gameID, rawText)
	if err != nil {
		return err
	}

	out := ParseOutput{Game: gameID, Fields: parsed}
	f := newFormatter()
	return f.Print(out, func(w io.Writer, _ interface{}) {
		if len(parsed) == 0 {
			fmt.Fprintf(w, "No fields extracted for %s\n", gameID)
			return
		}
		keys := make([]string, 0, len(parsed))
		for k := range parsed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %v\n", k, parsed[k])
		}
	})
}
