package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestDetectBackend(t *testing.T) {
	tests := []struct {
		path    string
		want    Backend
		wantErr bool
	}{
		{"results.json", BackendJSON, false},
		{"/some/dir/RESULTS.JSON", BackendJSON, false},
		{"results.db", BackendSQLite, false},
		{"results.sqlite", BackendSQLite, false},
		{"results.sqlite3", BackendSQLite, false},
		{"results.yaml", "", true},
		{"results", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectBackend(tt.path)
			if tt.wantErr {
				var ube *UnsupportedBackendError
				if !errors.As(err, &ube) {
					t.Errorf("expected UnsupportedBackendError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectBackend returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewStoreSelectsBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		s, err := NewStore(ctx, filepath.Join(t.TempDir(), "results.json"))
		if err != nil {
			t.Fatalf("NewStore returned error: %v", err)
		}
		defer s.Close()
		if _, ok := s.(*JSONStore); !ok {
			t.Errorf("expected *JSONStore, got %T", s)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := NewStore(ctx, filepath.Join(t.TempDir(), "results.db"))
		if err != nil {
			t.Fatalf("NewStore returned error: %v", err)
		}
		defer s.Close()
		if _, ok := s.(*SQLiteStore); !ok {
			t.Errorf("expected *SQLiteStore, got %T", s)
		}
	})
}
