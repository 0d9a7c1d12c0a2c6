package store

import (
	"context"
	"path/filepath"
	"strings"
)

// Backend identifies a persistence backend.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// DetectBackend maps a file extension to a backend.
func DetectBackend(path string) (Backend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return BackendJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite, nil
	default:
		return "", &UnsupportedBackendError{Extension: ext}
	}
}

// NewStore opens the store appropriate for the path's extension.
func NewStore(ctx context.Context, path string) (Store, error) {
	backend, err := DetectBackend(path)
	if err != nil {
		return nil, err
	}
	switch backend {
	case BackendSQLite:
		return NewSQLiteStore(ctx, path)
	default:
		return NewJSONStore(ctx, path)
	}
}
