package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
)

// JSONStore implements Store with a single pretty-printed JSON file.
// The snapshot lives in memory and is flushed write-through after every
// mutation; a sibling lock file keeps concurrent CLI invocations from
// interleaving writes.
type JSONStore struct {
	path   string
	mu     sync.RWMutex
	data   AppData
	closed bool
}

// NewJSONStore opens or creates the data file at path.
func NewJSONStore(ctx context.Context, path string) (*JSONStore, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, &UnsupportedBackendError{Extension: filepath.Ext(path)}
	}

	s := &JSONStore{path: path}

	if _, err := os.Stat(path); err == nil {
		data, err := loadAppData(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load data file: %w", err)
		}
		s.data = data
	} else {
		s.data = NewAppData()
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("failed to create data file: %w", err)
		}
	}
	return s, nil
}

func loadAppData(path string) (AppData, error) {
	fl := flock.New(path + ".lock")
	if err := fl.RLock(); err != nil {
		return AppData{}, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer fl.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return AppData{}, err
	}
	var data AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return AppData{}, fmt.Errorf("malformed data file %s: %w", path, err)
	}
	data.normalize()
	return data, nil
}

// save flushes the in-memory snapshot to disk (must hold write lock).
// A failed write leaves the in-memory state as the attempted new state;
// the caller surfaces the failure.
func (s *JSONStore) save() error {
	s.data.LastUpdated = time.Now().Format(time.RFC3339)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer fl.Unlock()

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	log.Debug().Str("path", s.path).Msg("data saved")
	return nil
}

// AddResult upserts today's entry for the game.
func (s *JSONStore) AddResult(ctx context.Context, gameID, rawText string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreClosed
	}

	today := LocalToday()
	results := s.data.GameResults[gameID]
	for i := range results {
		if results[i].Date == today {
			results[i].RawOutput = rawText
			return true, s.save()
		}
	}
	s.data.GameResults[gameID] = append(results, StoredResult{Date: today, RawOutput: rawText})
	return false, s.save()
}

// UpdateResult rewrites (and optionally renames) an existing entry.
func (s *JSONStore) UpdateResult(ctx context.Context, gameID, oldDate, rawText, newDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if newDate == "" {
		newDate = oldDate
	}

	results := s.data.GameResults[gameID]
	idx := -1
	for i := range results {
		if results[i].Date == oldDate {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrResultNotFound
	}

	if oldDate != newDate {
		for i := range results {
			if results[i].Date == newDate {
				return &DateConflictError{GameID: gameID, Date: newDate}
			}
		}
	}

	results[idx] = StoredResult{Date: newDate, RawOutput: rawText}
	return s.save()
}

// DeleteResult removes the entry at date; absence is a no-op.
func (s *JSONStore) DeleteResult(ctx context.Context, gameID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	results := s.data.GameResults[gameID]
	for i := range results {
		if results[i].Date == date {
			s.data.GameResults[gameID] = append(results[:i], results[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// ListResults returns all entries for a game.
func (s *JSONStore) ListResults(ctx context.Context, gameID string) ([]StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return append([]StoredResult(nil), s.data.GameResults[gameID]...), nil
}

// IsCompletedToday reports whether today's entry exists.
func (s *JSONStore) IsCompletedToday(ctx context.Context, gameID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	today := LocalToday()
	for _, r := range s.data.GameResults[gameID] {
		if r.Date == today {
			return true, nil
		}
	}
	return false, nil
}

// HideGame adds the game to the hidden set.
func (s *JSONStore) HideGame(ctx context.Context, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	for _, id := range s.data.HiddenGames {
		if id == gameID {
			return false, nil
		}
	}
	s.data.HiddenGames = append(s.data.HiddenGames, gameID)
	return true, s.save()
}

// UnhideGame removes the game from the hidden set.
func (s *JSONStore) UnhideGame(ctx context.Context, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	for i, id := range s.data.HiddenGames {
		if id == gameID {
			s.data.HiddenGames = append(s.data.HiddenGames[:i], s.data.HiddenGames[i+1:]...)
			return true, s.save()
		}
	}
	return false, nil
}

// HiddenGames returns the hidden game ids.
func (s *JSONStore) HiddenGames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return append([]string(nil), s.data.HiddenGames...), nil
}

// IsHidden reports whether the game is hidden.
func (s *JSONStore) IsHidden(ctx context.Context, gameID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	for _, id := range s.data.HiddenGames {
		if id == gameID {
			return true, nil
		}
	}
	return false, nil
}

// Data returns a deep copy of the snapshot.
func (s *JSONStore) Data(ctx context.Context) (AppData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return AppData{}, ErrStoreClosed
	}
	return s.data.Clone(), nil
}

// ReplaceData swaps in a validated snapshot and persists it.
func (s *JSONStore) ReplaceData(ctx context.Context, data AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	data.normalize()
	s.data = data.Clone()
	return s.save()
}

// Close marks the store closed.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
