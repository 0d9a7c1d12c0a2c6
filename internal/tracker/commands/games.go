package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker"
	"github.com/samestrin/guessr-tracker/internal/tracker/schema"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage game definitions",
	Long:  `List, add, hide, and validate the game definitions used to parse results.`,
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var gamesAddCmd = &cobra.Command{
	Use:   "add <definition-file>",
	Short: "Add or override a game from a YAML or JSON definition",
	Long: `Add a game definition from a file. Definitions for built-in games
become overrides merged on top of the built-in entry; unknown ids
become new custom games.`,
	Args: cobra.ExactArgs(1),
	RunE: runGamesAdd,
}

var gamesHideCmd = &cobra.Command{
	Use:   "hide <game-id>",
	Short: "Hide a game from daily views",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesHide,
}

var gamesUnhideCmd = &cobra.Command{
	Use:   "unhide <game-id>",
	Short: "Unhide a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesUnhide,
}

var gamesRemoveCmd = &cobra.Command{
	Use:   "remove <game-id>",
	Short: "Remove a custom game",
	Long:  `Remove a custom game definition. Built-in games cannot be removed; hide them instead.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesRemove,
}

var gamesValidateCmd = &cobra.Command{
	Use:   "validate [definition-file]",
	Short: "Validate game definitions",
	Long:  `Validate a definition file, or the full resolved game list when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGamesValidate,
}

func init() {
	rootCmd.AddCommand(gamesCmd)
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesAddCmd)
	gamesCmd.AddCommand(gamesHideCmd)
	gamesCmd.AddCommand(gamesUnhideCmd)
	gamesCmd.AddCommand(gamesRemoveCmd)
	gamesCmd.AddCommand(gamesValidateCmd)
}

// GameInfo is one game in the games list output.
type GameInfo struct {
	Game    string `json:"game"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Custom  bool   `json:"custom,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
	Parsing bool   `json:"parsing"`
}

func runGamesList(cmd *cobra.Command, args []string) error {
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

	var out []GameInfo
	for _, g := range reg.Games() {
		hidden, err := st.IsHidden(ctx, g.ID)
		if err != nil {
			return err
		}
		out = append(out, GameInfo{
			Game:    g.ID,
			Name:    g.Name,
			URL:     g.URL,
			Custom:  !reg.IsDefault(g.ID),
			Hidden:  hidden,
			Parsing: g.ResultParsingRules != nil,
		})
	}

	f := newFormatter()
	return f.Print(out, func(w io.Writer, _ interface{}) {
		for _, g := range out {
			tags := ""
			if g.Custom {
				tags += " [custom]"
			}
			if g.Hidden {
				tags += " [hidden]"
			}
			fmt.Fprintf(w, "%-24s %s%s\n", g.Game, g.Name, tags)
		}
	})
}

// loadDefinition reads a single game definition from a YAML or JSON file.
func loadDefinition(path string) (*schema.GameSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	var g schema.GameSchema
	if json.Valid(data) {
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("failed to decode definition: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	if g.ID == "" {
		return nil, &tracker.TrackerError{
			Type:    tracker.ErrTypeInvalidInput,
			Message: fmt.Sprintf("definition in %s has no id", path),
			Hint:    "Every game definition needs an 'id' field.",
		}
	}
	return &g, nil
}

func runGamesAdd(cmd *cobra.Command, args []string) error {
	g, err := loadDefinition(args[0])
	if err != nil {
		return err
	}
	if err := schema.Validate(g); err != nil {
		return err
	}

	reg, err := GetRegistry()
	if err != nil {
		return err
	}

	status := "added"
	if reg.IsDefault(g.ID) {
		if err := reg.Override(*g); err != nil {
			return err
		}
		status = "overridden"
	} else if err := reg.Add(*g); err != nil {
		if !errors.Is(err, schema.ErrDuplicateGame) {
			return err
		}
		// existing custom entry: replace it
		if err := reg.Remove(g.ID); err != nil {
			return err
		}
		if err := reg.Add(*g); err != nil {
			return err
		}
		status = "updated"
	}

	if err := SaveOverlay(reg); err != nil {
		return err
	}

	f := newFormatter()
	result := map[string]string{"status": status, "game": g.ID}
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Game %s %s\n", g.ID, status)
	})
}

func runGamesHide(cmd *cobra.Command, args []string) error {
	return setHidden(cmd, args[0], true)
}

func runGamesUnhide(cmd *cobra.Command, args []string) error {
	return setHidden(cmd, args[0], false)
}

func setHidden(cmd *cobra.Command, gameID string, hide bool) error {
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

	var changed bool
	verb := "hidden"
	if hide {
		changed, err = st.HideGame(ctx, gameID)
	} else {
		changed, err = st.UnhideGame(ctx, gameID)
		verb = "unhidden"
	}
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Game %s %s", gameID, verb)
	if !changed {
		message = fmt.Sprintf("Game %s already %s", gameID, verb)
	}
	f := newFormatter()
	result := map[string]any{"game": gameID, "hidden": hide, "changed": changed}
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintln(w, message)
	})
}

func runGamesRemove(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	if err := reg.Remove(gameID); err != nil {
		if errors.Is(err, schema.ErrDefaultGame) {
			return &tracker.TrackerError{
				Type:    tracker.ErrTypeInvalidInput,
				Message: fmt.Sprintf("cannot remove built-in game %q", gameID),
				Hint:    "Use 'guessr games hide' to hide built-in games.",
			}
		}
		return err
	}
	if err := SaveOverlay(reg); err != nil {
		return err
	}

	f := newFormatter()
	result := map[string]string{"status": "removed", "game": gameID}
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Game %s removed\n", gameID)
	})
}

func runGamesValidate(cmd *cobra.Command, args []string) error {
	f := newFormatter()

	if len(args) == 1 {
		g, err := loadDefinition(args[0])
		if err != nil {
			return err
		}
		if err := schema.Validate(g); err != nil {
			return err
		}
		result := map[string]any{"valid": true, "game": g.ID}
		return f.Print(result, func(w io.Writer, _ interface{}) {
			fmt.Fprintf(w, "Definition for %s is valid\n", g.ID)
		})
	}

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	games := reg.Games()
	if err := schema.ValidateAll(games); err != nil {
		return err
	}
	result := map[string]any{"valid": true, "count": len(games)}
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "All %d game definitions are valid\n", len(games))
	})
}
