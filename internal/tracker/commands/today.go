package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker/store"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's completion status",
	Long:  `Show which games have a recorded result for today. Hidden games are skipped unless --all is given.`,
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var todayAll bool

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().BoolVar(&todayAll, "all", false, "Include hidden games")
}

// TodayEntry is one game's completion status.
type TodayEntry struct {
	Game      string `json:"game"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Hidden    bool   `json:"hidden,omitempty"`
}

// TodayOutput represents the JSON output of the today command.
type TodayOutput struct {
	Date      string       `json:"date"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Games     []TodayEntry `json:"games"`
}

func runToday(cmd *cobra.Command, args []string) error {
	reg, err := GetRegistry()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := GetStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	out := TodayOutput{Date: store.LocalToday()}
	for _, g := range reg.Games() {
		hidden, err := st.IsHidden(ctx, g.ID)
		if err != nil {
			return err
		}
		if hidden && !todayAll {
			continue
		}
		done, err := st.IsCompletedToday(ctx, g.ID)
		if err != nil {
			return err
		}
		out.Games = append(out.Games, TodayEntry{
			Game:      g.ID,
			Name:      g.Name,
			Completed: done,
			Hidden:    hidden,
		})
		out.Total++
		if done {
			out.Completed++
		}
	}

	f := newFormatter()
	return f.Print(out, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "%s: %d/%d completed\n", out.Date, out.Completed, out.Total)
		for _, e := range out.Games {
			mark := " "
			if e.Completed {
				mark = "x"
			}
			suffix := ""
			if e.Hidden {
				suffix = " (hidden)"
			}
			fmt.Fprintf(w, "  [%s] %s%s\n", mark, e.Name, suffix)
		}
	})
}
