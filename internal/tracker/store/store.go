package store

import "context"

// Store defines CRUD over stored results per (gameID, date), plus the
// hidden-game set. Every mutating operation persists before returning
// (write-through, no dirty tracking).
type Store interface {
	// AddResult upserts by (gameID, local today): an existing entry for
	// today has its raw output overwritten, otherwise a new entry is
	// appended. Reports whether an existing entry was updated.
	AddResult(ctx context.Context, gameID, rawText string) (updated bool, err error)

	// UpdateResult rewrites the entry at oldDate, optionally renaming it
	// to newDate. Renaming onto another entry's date returns a
	// DateConflictError and leaves both entries unchanged.
	UpdateResult(ctx context.Context, gameID, oldDate, rawText, newDate string) error

	// DeleteResult removes the matching entry; absence is a no-op.
	DeleteResult(ctx context.Context, gameID, date string) error

	// ListResults returns all stored entries for a game in storage order;
	// callers sort by date when order matters.
	ListResults(ctx context.Context, gameID string) ([]StoredResult, error)

	// IsCompletedToday reports whether an entry exists for local today.
	IsCompletedToday(ctx context.Context, gameID string) (bool, error)

	// HideGame adds the game to the hidden set; reports whether the set
	// changed.
	HideGame(ctx context.Context, gameID string) (bool, error)

	// UnhideGame removes the game from the hidden set; reports whether
	// the set changed.
	UnhideGame(ctx context.Context, gameID string) (bool, error)

	// HiddenGames returns the hidden game ids.
	HiddenGames(ctx context.Context) ([]string, error)

	// IsHidden reports whether the game is hidden.
	IsHidden(ctx context.Context, gameID string) (bool, error)

	// Data returns a deep copy of the full snapshot, for export.
	Data(ctx context.Context) (AppData, error)

	// ReplaceData swaps in a fully validated snapshot and persists it.
	// Used by import after the payload has been accepted in full.
	ReplaceData(ctx context.Context, data AppData) error

	// Close releases storage resources. After Close, all operations
	// return ErrStoreClosed.
	Close() error
}
