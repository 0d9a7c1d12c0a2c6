package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/engine"
)

var listCmd = &cobra.Command{
	Use:   "list <game-id>",
	Short: "List stored results for a game",
	Long:  `List all stored results for a game, oldest first, optionally with the fields parsed out of each entry.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

var listParsed bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listParsed, "parsed", false, "Include parsed fields for each result")
}

// ListEntry is one stored result in the list output.
type ListEntry struct {
	Date      string         `json:"date"`
	RawOutput string         `json:"rawOutput"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// ListOutput represents the JSON output of the list command.
type ListOutput struct {
	Game    string      `json:"game"`
	Count   int         `json:"count"`
	Results []ListEntry `json:"results"`
}

func runList(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	if _, found := reg.Lookup(gameID); !found {
		return tracker.ErrGameUnknown(gameID)
	}

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.ListResults(ctx, gameID)
	if err != nil {
		return err
	}

	eng := engine.New(reg)
	out := ListOutput{Game: gameID, Count: len(results), Results: make([]ListEntry, 0, len(results))}
	for _, r := range results {
		entry := ListEntry{Date: r.Date, RawOutput: r.RawOutput}
		if listParsed {
			parsed, perr := eng.Parse(gameID, r.RawOutput)
			if perr == nil {
				entry.Fields = parsed
			}
		}
		out.Results = append(out.Results, entry)
	}

	f := newFormatter()
	return f.Print(out, func(w io.Writer, _ interface{}) {
		if out.Count == 0 {
			fmt.Fprintf(w, "No results for %s\n", gameID)
			return
		}
		fmt.Fprintf(w, "%d result(s) for %s:\n", out.Count, gameID)
		for _, e := range out.Results {
			fmt.Fprintf(w, "  %s\n", e.Date)
			if e.Fields != nil {
				for k, v := range e.Fields {
					fmt.Fprintf(w, "    %s: %v\n", k, v)
				}
			}
		}
	})
}
