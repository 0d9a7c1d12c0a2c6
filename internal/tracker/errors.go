package tracker

import (
	"fmt"
)

// Error types for better error handling
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotFound
	ErrTypeInvalidInput
	ErrTypeConfiguration
	ErrTypeConflict
)

// TrackerError provides structured error information for user-facing
// command failures.
type TrackerError struct {
	Type    ErrorType
	Message string
	Cause   error
	Hint    string
}

func (e *TrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TrackerError) Unwrap() error {
	return e.Cause
}

// WithHint adds a helpful hint to the error
func (e *TrackerError) WithHint(hint string) *TrackerError {
	e.Hint = hint
	return e
}

// FormatWithHint returns the error message with hint if available
func (e *TrackerError) FormatWithHint() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s\n  Hint: %s", e.Error(), e.Hint)
	}
	return e.Error()
}

// Error constructors for common cases

// ErrGameUnknown creates an error for a game id missing from the
// resolved game list.
func ErrGameUnknown(gameID string) *TrackerError {
	return &TrackerError{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("unknown game: %q", gameID),
		Hint:    "Run 'guessr games list' to see the available game ids.",
	}
}

// ErrEmptyResult creates an error for an empty pasted result.
func ErrEmptyResult() *TrackerError {
	return &TrackerError{
		Type:    ErrTypeInvalidInput,
		Message: "result text cannot be empty",
		Hint:    "Paste the game's share text as the argument or pipe it on stdin.",
	}
}

// ErrBadDate creates an error for a date that is not YYYY-MM-DD.
func ErrBadDate(date string) *TrackerError {
	return &TrackerError{
		Type:    ErrTypeInvalidInput,
		Message: fmt.Sprintf("invalid date: %q", date),
		Hint:    "Dates must use the YYYY-MM-DD format, e.g. 2026-08-30.",
	}
}
