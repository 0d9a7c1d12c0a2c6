package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id    TEXT NOT NULL,
	date       TEXT NOT NULL,
	raw_output TEXT NOT NULL,
	PRIMARY KEY (game_id, date)
);

CREATE TABLE IF NOT EXISTS hidden_games (
	game_id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore implements Store on a SQLite database. Uniqueness of
// (game_id, date) is enforced by the primary key rather than in-memory
// scans.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	closed bool
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".db" && ext != ".sqlite" && ext != ".sqlite3" {
		return nil, &UnsupportedBackendError{Extension: ext}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) touch(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('lastUpdated', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().Format(time.RFC3339))
	return err
}

// AddResult upserts today's entry for the game.
func (s *SQLiteStore) AddResult(ctx context.Context, gameID, rawText string) (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	today := LocalToday()
	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM game_results WHERE game_id = ? AND date = ?", gameID, today).Scan(&exists)
	updated := err == nil
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check existing result: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO game_results (game_id, date, raw_output) VALUES (?, ?, ?)
		 ON CONFLICT(game_id, date) DO UPDATE SET raw_output = excluded.raw_output`,
		gameID, today, rawText)
	if err != nil {
		return false, fmt.Errorf("failed to upsert result: %w", err)
	}
	if err := s.touch(ctx, tx); err != nil {
		return false, err
	}
	return updated, tx.Commit()
}

// UpdateResult rewrites (and optionally renames) an existing entry.
func (s *SQLiteStore) UpdateResult(ctx context.Context, gameID, oldDate, rawText, newDate string) error {
	if s.closed {
		return ErrStoreClosed
	}
	if newDate == "" {
		newDate = oldDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM game_results WHERE game_id = ? AND date = ?", gameID, oldDate).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrResultNotFound
	} else if err != nil {
		return fmt.Errorf("failed to find result: %w", err)
	}

	if oldDate != newDate {
		err = tx.QueryRowContext(ctx,
			"SELECT 1 FROM game_results WHERE game_id = ? AND date = ?", gameID, newDate).Scan(&exists)
		if err == nil {
			return &DateConflictError{GameID: gameID, Date: newDate}
		} else if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check date conflict: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE game_results SET date = ?, raw_output = ? WHERE game_id = ? AND date = ?",
		newDate, rawText, gameID, oldDate)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}
	if err := s.touch(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteResult removes the entry at date; absence is a no-op.
func (s *SQLiteStore) DeleteResult(ctx context.Context, gameID, date string) error {
	if s.closed {
		return ErrStoreClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM game_results WHERE game_id = ? AND date = ?", gameID, date); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if err := s.touch(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ListResults returns all entries for a game.
func (s *SQLiteStore) ListResults(ctx context.Context, gameID string) ([]StoredResult, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, raw_output FROM game_results WHERE game_id = ? ORDER BY date", gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var r StoredResult
		if err := rows.Scan(&r.Date, &r.RawOutput); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// IsCompletedToday reports whether today's entry exists.
func (s *SQLiteStore) IsCompletedToday(ctx context.Context, gameID string) (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM game_results WHERE game_id = ? AND date = ?", gameID, LocalToday()).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// HideGame adds the game to the hidden set.
func (s *SQLiteStore) HideGame(ctx context.Context, gameID string) (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO hidden_games (game_id) VALUES (?)", gameID)
	if err != nil {
		return false, fmt.Errorf("failed to hide game: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UnhideGame removes the game from the hidden set.
func (s *SQLiteStore) UnhideGame(ctx context.Context, gameID string) (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM hidden_games WHERE game_id = ?", gameID)
	if err != nil {
		return false, fmt.Errorf("failed to unhide game: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// HiddenGames returns the hidden game ids.
func (s *SQLiteStore) HiddenGames(ctx context.Context) ([]string, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, "SELECT game_id FROM hidden_games ORDER BY game_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query hidden games: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// IsHidden reports whether the game is hidden.
func (s *SQLiteStore) IsHidden(ctx context.Context, gameID string) (bool, error) {
	if s.closed {
		return false, ErrStoreClosed
	}
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM hidden_games WHERE game_id = ?", gameID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// Data assembles a full snapshot, for export.
func (s *SQLiteStore) Data(ctx context.Context) (AppData, error) {
	if s.closed {
		return AppData{}, ErrStoreClosed
	}
	data := NewAppData()

	rows, err := s.db.QueryContext(ctx,
		"SELECT game_id, date, raw_output FROM game_results ORDER BY game_id, date")
	if err != nil {
		return AppData{}, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var gameID string
		var r StoredResult
		if err := rows.Scan(&gameID, &r.Date, &r.RawOutput); err != nil {
			return AppData{}, err
		}
		data.GameResults[gameID] = append(data.GameResults[gameID], r)
	}
	if err := rows.Err(); err != nil {
		return AppData{}, err
	}

	hidden, err := s.HiddenGames(ctx)
	if err != nil {
		return AppData{}, err
	}
	data.HiddenGames = hidden

	var last string
	err = s.db.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = 'lastUpdated'").Scan(&last)
	if err == nil {
		data.LastUpdated = last
	} else if err != sql.ErrNoRows {
		return AppData{}, err
	}
	return data, nil
}

// ReplaceData swaps the database contents for a validated snapshot.
func (s *SQLiteStore) ReplaceData(ctx context.Context, data AppData) error {
	if s.closed {
		return ErrStoreClosed
	}
	data.normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_results"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM hidden_games"); err != nil {
		return err
	}
	for gameID, results := range data.GameResults {
		for _, r := range results {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO game_results (game_id, date, raw_output) VALUES (?, ?, ?)",
				gameID, r.Date, r.RawOutput); err != nil {
				return fmt.Errorf("failed to insert result: %w", err)
			}
		}
	}
	for _, id := range data.HiddenGames {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO hidden_games (game_id) VALUES (?)", id); err != nil {
			return err
		}
	}
	if err := s.touch(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database. After Close, all operations return
// ErrStoreClosed.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
