// Package config provides configuration file support for guessr commands.
// This file contains config-specific error constructors following the
// TrackerError pattern.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/samestrin/guessr-tracker/internal/tracker"
)

// ErrConfigNotFound creates an error for when the config file doesn't exist
func ErrConfigNotFound(path string) *tracker.TrackerError {
	return &tracker.TrackerError{
		Type:    tracker.ErrTypeNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Create a config file or specify an existing file path with --config.",
	}
}

// ErrConfigPermissionDenied creates an error for when the config file cannot be read
func ErrConfigPermissionDenied(path string, cause error) *tracker.TrackerError {
	return &tracker.TrackerError{
		Type:    tracker.ErrTypeNotFound,
		Message: fmt.Sprintf("cannot read config file: %s", path),
		Cause:   cause,
		Hint:    "Check file permissions with 'ls -la' and ensure the file is readable.",
	}
}

// ErrConfigEmpty creates an error for when the config file is empty
func ErrConfigEmpty(path string) *tracker.TrackerError {
	return &tracker.TrackerError{
		Type:    tracker.ErrTypeConfiguration,
		Message: fmt.Sprintf("config file is empty: %s", path),
		Hint:    "Add configuration content or remove the --config flag to use defaults.",
	}
}

// ErrConfigInvalidYAML creates an error for invalid YAML syntax.
// It extracts line/column information from goccy/go-yaml errors when available.
func ErrConfigInvalidYAML(path string, cause error) *tracker.TrackerError {
	lineCol := extractLineColumn(cause)

	var message string
	if lineCol != "" {
		message = fmt.Sprintf("invalid YAML syntax in %s at %s", path, lineCol)
	} else {
		message = fmt.Sprintf("invalid YAML syntax in %s", path)
	}

	return &tracker.TrackerError{
		Type:    tracker.ErrTypeInvalidInput,
		Message: message,
		Cause:   cause,
		Hint:    "Check for proper indentation, missing colons, or unclosed quotes near the indicated location.",
	}
}

// ErrConfigPathEmpty creates an error for when the config path is empty or whitespace
func ErrConfigPathEmpty() *tracker.TrackerError {
	return &tracker.TrackerError{
		Type:    tracker.ErrTypeInvalidInput,
		Message: "config file path cannot be empty or whitespace",
		Hint:    "Provide a valid file path with --config or omit the flag to use defaults.",
	}
}

// extractLineColumn extracts line:column from goccy/go-yaml error messages.
// Returns format like "line 5, column 3" or empty string if not found.
func extractLineColumn(err error) string {
	if err == nil {
		return ""
	}

	// goccy/go-yaml format: "[<line>:<col>] <message>"
	re := regexp.MustCompile(`\[(\d+):(\d+)\]`)
	matches := re.FindStringSubmatch(err.Error())
	if len(matches) == 3 {
		return fmt.Sprintf("line %s, column %s", matches[1], matches[2])
	}
	return ""
}

// WrapReadError wraps an os error from reading a config file with an
// appropriate TrackerError
func WrapReadError(path string, err error) *tracker.TrackerError {
	if os.IsNotExist(err) {
		return ErrConfigNotFound(path)
	}
	if os.IsPermission(err) {
		return ErrConfigPermissionDenied(path, err)
	}
	return &tracker.TrackerError{
		Type:    tracker.ErrTypeNotFound,
		Message: fmt.Sprintf("failed to read config file: %s", path),
		Cause:   err,
		Hint:    "Check that the file exists and is readable.",
	}
}
