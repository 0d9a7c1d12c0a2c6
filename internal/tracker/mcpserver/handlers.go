package mcpserver

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// BinaryPath is the path to the guessr binary
var BinaryPath = "/usr/local/bin/guessr"

// CommandTimeout is the default timeout for command execution
var CommandTimeout = 60 * time.Second

// ExecuteHandler executes the appropriate command for a tool
func ExecuteHandler(toolName string, args map[string]interface{}) (string, error) {
	// Strip prefix
	cmdName := strings.TrimPrefix(toolName, ToolPrefix)

	// Build command args
	cmdArgs, err := buildArgs(cmdName, args)
	if err != nil {
		return "", err
	}

	// Execute command
	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, BinaryPath, cmdArgs...)
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("command timed out after %v", CommandTimeout)
	}

	if err != nil {
		// Return output even on error (may contain useful error message)
		if len(output) > 0 {
			return string(output), nil
		}
		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// buildArgs builds CLI arguments for the given tool
func buildArgs(cmdName string, args map[string]interface{}) ([]string, error) {
	switch cmdName {
	case "add":
		return buildAddArgs(args), nil
	case "list":
		return buildListArgs(args), nil
	case "update":
		return buildUpdateArgs(args), nil
	case "delete":
		return buildDeleteArgs(args), nil
	case "average":
		return buildAverageArgs(args), nil
	case "parse":
		return buildParseArgs(args), nil
	case "today":
		return buildTodayArgs(args), nil
	case "games":
		return buildGamesArgs(args), nil
	case "export":
		return buildExportArgs(args), nil
	case "import":
		return buildImportArgs(args), nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
}

func buildAddArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"add"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if t, ok := args["text"].(string); ok {
		cmdArgs = append(cmdArgs, t)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildListArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"list"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if getBool(args, "parsed") {
		cmdArgs = append(cmdArgs, "--parsed")
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildUpdateArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"update"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if d, ok := args["date"].(string); ok {
		cmdArgs = append(cmdArgs, d)
	}
	if t, ok := args["text"].(string); ok {
		cmdArgs = append(cmdArgs, t)
	}
	if nd, ok := args["new_date"].(string); ok {
		cmdArgs = append(cmdArgs, "--new-date", nd)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildDeleteArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"delete"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if d, ok := args["date"].(string); ok {
		cmdArgs = append(cmdArgs, d)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildAverageArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"average"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if f, ok := args["field"].(string); ok {
		cmdArgs = append(cmdArgs, "--field", f)
	}
	if d, ok := getInt(args, "days"); ok {
		cmdArgs = append(cmdArgs, "--days", strconv.Itoa(d))
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildParseArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"parse"}
	if g, ok := args["game"].(string); ok {
		cmdArgs = append(cmdArgs, g)
	}
	if t, ok := args["text"].(string); ok {
		cmdArgs = append(cmdArgs, t)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildTodayArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"today"}
	if getBool(args, "all") {
		cmdArgs = append(cmdArgs, "--all")
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildGamesArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"games", "list"}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildExportArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"export"}
	if o, ok := args["output"].(string); ok {
		cmdArgs = append(cmdArgs, o)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

func buildImportArgs(args map[string]interface{}) []string {
	cmdArgs := []string{"import"}
	if i, ok := args["input"].(string); ok {
		cmdArgs = append(cmdArgs, i)
	}
	cmdArgs = appendCommonArgs(cmdArgs, args)
	return cmdArgs
}

// appendCommonArgs adds the flags shared by every tool: the optional
// store path and the json/min output flags that default on in MCP
// context.
func appendCommonArgs(cmdArgs []string, args map[string]interface{}) []string {
	if d, ok := args["data"].(string); ok {
		cmdArgs = append(cmdArgs, "--data", d)
	}
	if getBoolDefault(args, "json", true) {
		cmdArgs = append(cmdArgs, "--json")
	}
	if getBoolDefault(args, "min", true) {
		cmdArgs = append(cmdArgs, "--min")
	}
	return cmdArgs
}

// Helper functions

func getBool(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

// getBoolDefault returns the bool value for key, or defaultVal if not set.
// Used for json/min flags that should default to true in MCP context.
func getBoolDefault(args map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return defaultVal
}

func getInt(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case int64:
		return int(v), true
	}
	return 0, false
}
