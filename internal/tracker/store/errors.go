package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations
var (
	// ErrResultNotFound indicates no result exists at the requested date.
	ErrResultNotFound = errors.New("result not found")

	// ErrStoreClosed indicates an operation was attempted on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrInvalidPath indicates an invalid data file path was provided.
	ErrInvalidPath = errors.New("invalid path")
)

// DateConflictError reports a rename that would collide with another
// entry's date for the same game. The original entries are left unchanged.
type DateConflictError struct {
	GameID string
	Date   string
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("a result already exists for %s on %s", e.GameID, e.Date)
}

// UnsupportedBackendError reports a data file extension no backend claims.
type UnsupportedBackendError struct {
	Extension string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported storage backend for extension %q (use .json, .db, .sqlite or .sqlite3)", e.Extension)
}
