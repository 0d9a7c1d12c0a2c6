// Package main is the entry point for the guessr CLI tool.
package main

import (
	"os"

	"github.com/samestrin/guessr-tracker/internal/tracker/commands"
	"github.com/samestrin/guessr-tracker/pkg/output"
)

func main() {
	if err := commands.Execute(); err != nil {
		f := output.New(commands.GlobalJSONOutput, commands.GlobalMinOutput, os.Stdout)
		os.Exit(f.PrintError(err))
	}
}
