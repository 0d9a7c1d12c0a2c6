package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

var updateCmd = &cobra.Command{
	Use:   "update <game-id> <date> [result-text]",
	Short: "Edit a stored result",
	Long: `Replace the raw text of a stored result, and optionally move it to a
new date with --new-date. Moving onto a date that already has an entry
fails rather than silently overwriting it.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runUpdate,
}

var updateNewDate string

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateNewDate, "new-date", "", "Move the entry to this date (YYYY-MM-DD)")
}

// UpdateResult represents the JSON output of the update command.
type UpdateResult struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

func validDate(date string) bool {
	_, err := time.Parse(store.DateLayout, date)
	return err == nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	gameID, oldDate := args[0], args[1]
	if !validDate(oldDate) {
		return tracker.ErrBadDate(oldDate)
	}
	if updateNewDate != "" && !validDate(updateNewDate) {
		return tracker.ErrBadDate(updateNewDate)
	}

	rawText, err := readResultText(args, 2)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpdateResult(ctx, gameID, oldDate, rawText, updateNewDate); err != nil {
		return err
	}

	finalDate := oldDate
	if updateNewDate != "" {
		finalDate = updateNewDate
	}
	result := UpdateResult{
		Status:  "updated",
		Game:    gameID,
		Date:    finalDate,
		Message: "Result updated",
	}

	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "%s for %s (%s)\n", result.Message, result.Game, result.Date)
	})
}
