package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/samestrin/guessr-tracker/internal/tracker/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export <output-file>",
	Short: "Export results and games to a backup file",
	Long:  `Export all stored results together with the complete resolved game list, enough to restore exactly on another machine.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <input-file>",
	Short: "Import a backup file",
	Long: `Import a backup file. Combined backups replace stored results and
merge any non-built-in games; schema-only files merge games without
touching results. An unrecognized file is rejected without changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportSchemaCmd = &cobra.Command{
	Use:   "export-schema <output-file>",
	Short: "Export custom game definitions",
	Long:  `Export only the custom game definitions, for sharing configuration without personal history.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExportSchema,
}

var importSchemaCmd = &cobra.Command{
	Use:   "import-schema <input-file>",
	Short: "Import custom game definitions",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportSchema,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportSchemaCmd)
	rootCmd.AddCommand(importSchemaCmd)
}

// TransferResult represents the JSON output of the transfer commands.
type TransferResult struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Kind    string `json:"kind,omitempty"`
	Games   int    `json:"games,omitempty"`
	Results int    `json:"results,omitempty"`
	Message string `json:"message"`
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

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

	data, err := transfer.ExportCombined(ctx, st, reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	result := TransferResult{Status: "exported", Path: path, Message: "Backup written"}
	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Backup written to %s\n", path)
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

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

	report, err := transfer.Import(ctx, raw, st, reg)
	if err != nil {
		return err
	}
	if report.GamesImported > 0 {
		if err := SaveOverlay(reg); err != nil {
			return err
		}
	}

	result := TransferResult{
		Status:  "imported",
		Path:    path,
		Kind:    string(report.Kind),
		Games:   report.GamesImported,
		Results: report.ResultsLoaded,
		Message: "Import complete",
	}
	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Imported %s: %d result(s), %d game(s)\n", path, report.ResultsLoaded, report.GamesImported)
	})
}

func runExportSchema(cmd *cobra.Command, args []string) error {
	path := args[0]

	reg, err := GetRegistry()
	if err != nil {
		return err
	}
	data, err := transfer.ExportSchemas(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema export: %w", err)
	}

	result := TransferResult{Status: "exported", Path: path, Message: "Game definitions written"}
	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Game definitions written to %s\n", path)
	})
}

func runImportSchema(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

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

	report, err := transfer.Import(ctx, raw, st, reg)
	if err != nil {
		return err
	}
	if err := SaveOverlay(reg); err != nil {
		return err
	}

	result := TransferResult{
		Status:  "imported",
		Path:    path,
		Kind:    string(report.Kind),
		Games:   report.GamesImported,
		Message: "Game definitions imported",
	}
	f := newFormatter()
	return f.Print(result, func(w io.Writer, _ interface{}) {
		fmt.Fprintf(w, "Imported %d game definition(s) from %s\n", report.GamesImported, path)
	})
}
