package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

var addCmd = &cobra.Command{
	Use:   "add <game-id> [result-text]",
	Short: "Record today's result for a game",
	Long: `Record a pasted share-text result for a game under today's date.
If the game was already recorded today, the entry is replaced.
Result text is read from the argument, or from stdin when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// AddResult represents the JSON output of the add command.
type AddResult struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// readResultText returns the pasted text: the positional argument if
// given, otherwise all of stdin.
func readResultText(args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read result text from stdin: %w", err)
	}
	return string(data), nil
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	updated, err := st.AddResult(ctx, gameID, rawText)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	status := "created"
	message := "Result recorded"
	if updated {
		status = "updated"
		message = "Today's result replaced"
	}
	result := AddResult{
		Status:  status,
		Game:    gameID,
		Date:    store.LocalToday(),
		Message: message,
	}

	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "%s for %s (%s)\n", result.Message, result.Game, result.Date)
	})
}
