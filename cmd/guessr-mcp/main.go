package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samestrin/guessr-tracker/internal/tracker/mcpserver"
)

const (
	serverName         = "guessr-mcp"
	serverVersion      = "1.0.0"
	serverInstructions = "Guessr MCP provides tools for tracking daily puzzle game results: record pasted share text, inspect parsed fields, and query rolling averages and completion status."
)

func main() {
	// Verify guessr binary exists, falling back to PATH lookup
	if _, err := os.Stat(mcpserver.BinaryPath); os.IsNotExist(err) {
		if found, lookErr := exec.LookPath("guessr"); lookErr == nil {
			mcpserver.BinaryPath = found
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: guessr binary not found at %s or in PATH\n", mcpserver.BinaryPath)
			fmt.Fprintf(os.Stderr, "Please ensure guessr is installed and accessible.\n")
			os.Exit(1)
		}
	}

	// Create MCP server using official SDK
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	// Register all tools
	tools := mcpserver.GetToolDefinitions()
	for _, toolDef := range tools {
		// Capture for closure
		td := toolDef
		server.AddTool(&mcp.Tool{
			Name:        td.Name,
			Description: td.Description,
			InputSchema: td.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			// Unmarshal arguments
			var args map[string]interface{}
			if req.Params.Arguments != nil {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return &mcp.CallToolResult{
						Content: []mcp.Content{
							&mcp.TextContent{Text: "Error parsing arguments: " + err.Error()},
						},
						IsError: true,
					}, nil
				}
			}

			// Execute the tool using the handler
			output, err := mcpserver.ExecuteHandler(td.Name, args)
			if err != nil {
				return &mcp.CallToolResult{
					Content: []mcp.Content{
						&mcp.TextContent{Text: "Error: " + err.Error()},
					},
					IsError: true,
				}, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: output},
				},
			}, nil
		})
	}

	// Log startup
	fmt.Fprintf(os.Stderr, "%s v%s started with %d tools\n", serverName, serverVersion, len(tools))

	// Run server on stdio
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
