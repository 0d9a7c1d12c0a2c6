package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations
var (
	// ErrGameNotFound indicates the requested game id is not registered.
	ErrGameNotFound = errors.New("game not found")

	// ErrDuplicateGame indicates a game with the same id already exists.
	ErrDuplicateGame = errors.New("duplicate game id")

	// ErrDefaultGame indicates a mutation reserved for custom games was
	// attempted on a shipped default (defaults can be hidden, not removed).
	ErrDefaultGame = errors.New("cannot remove a default game")
)

// ConfigError reports a schema authoring bug for a specific game. It is
// raised at parse or validation time, never downgraded to a default.
type ConfigError struct {
	GameID string
	Detail string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("game %s: %s: %v", e.GameID, e.Detail, e.Cause)
	}
	return fmt.Sprintf("game %s: %s", e.GameID, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// NewConfigError creates a ConfigError for the given game.
func NewConfigError(gameID, detail string) *ConfigError {
	return &ConfigError{GameID: gameID, Detail: detail}
}
