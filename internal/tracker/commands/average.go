package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/stats"
)

var averageCmd = &cobra.Command{
	Use:   "average <game-id>",
	Short: "Show a game's rolling average",
	Long: `Compute the rolling average of a parsed field over the trailing window.
Without flags the game's own average display settings are used. Failed
attempts never count; if every stored result predates the window, the
full history is averaged instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAverage,
}

var (
	averageField string
	averageDays  int
)

func init() {
	rootCmd.AddCommand(averageCmd)
	averageCmd.Flags().StringVar(&averageField, "field", "", "Parsed field to average (default: game's configured field)")
	averageCmd.Flags().IntVar(&averageDays, "days", 0, "Trailing window in days (default: game's configured window)")
}

// AverageResult represents the JSON output of the average command.
// Average carries the bare number; Display is the schema's template
// rendered around it.
type AverageResult struct {
	Game    string `json:"game"`
	Field   string `json:"field,omitempty"`
	Window  int    `json:"window,omitempty"`
	Average string `json:"average,omitempty"`
	Display string `json:"display,omitempty"`
	HasData bool   `json:"hasData"`
}

func runAverage(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	g, found := reg.Lookup(gameID)
	if !found {
		return tracker.ErrGameUnknown(gameID)
	}

	field := averageField
	days := averageDays
	if g.AverageDisplay != nil {
		if field == "" {
			field = g.AverageDisplay.Field
		}
		if days == 0 {
			days = g.AverageDisplay.Days
		}
	}
	if field == "" {
		return &tracker.TrackerError{
			Type:    tracker.ErrTypeConfiguration,
			Message: fmt.Sprintf("game %q has no average display configured", gameID),
			Hint:    "Pass --field to choose which parsed field to average.",
		}
	}
	if days == 0 {
		days = stats.DefaultWindowDays
	}

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	agg := stats.NewAggregator(reg, st)
	mean, ok, err := agg.Mean(ctx, gameID, field, days)
	if err != nil {
		return err
	}

	template := ""
	if g.AverageDisplay != nil {
		template = g.AverageDisplay.Template
	}
	var formatted, display string
	if ok {
		formatted = stats.FormatAverage(template, mean)
		display = stats.RenderTemplate(template, mean)
	}

	result := AverageResult{
		Game:    gameID,
		Field:   field,
		Window:  days,
		Average: formatted,
		Display: display,
		HasData: ok,
	}

	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		if !ok {
			fmt.Fprintf(w, "No eligible results for %s\n", gameID)
			return
		}
		fmt.Fprintf(w, "%s\n", display)
	})
}
