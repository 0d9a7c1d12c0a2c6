package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <game-id> <date>",
	Short: "Delete a stored result",
	Long:  `Delete the result stored for a game on the given date. Deleting an absent entry is a no-op.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// DeleteResult represents the JSON output of the delete command.
type DeleteResult struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

func runDelete(cmd *cobra.Command, args []string) error {
	gameID, date := args[0], args[1]
	if !validDate(date) {
		return tracker.ErrBadDate(date)
	}

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteResult(ctx, gameID, date); err != nil {
		return err
	}

	result := DeleteResult{
		Status:  "deleted",
		Game:    gameID,
		Date:    date,
		Message: "Result deleted",
	}

	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "%s for %s (%s)\n", result.Message, result.Game, result.Date)
	})
}
