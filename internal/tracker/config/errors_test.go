package config

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/samestrin/guessr-tracker/internal/tracker"
)

func TestErrConfigNotFound(t *testing.T) {
	path := "/path/to/missing.yaml"
	err := ErrConfigNotFound(path)

	if err.Type != tracker.ErrTypeNotFound {
		t.Errorf("expected ErrTypeNotFound, got %v", err.Type)
	}
	if !strings.Contains(err.Message, path) {
		t.Errorf("expected message to contain path %q, got %q", path, err.Message)
	}
	if err.Hint == "" {
		t.Error("expected non-empty hint")
	}
}

func TestErrConfigPermissionDenied(t *testing.T) {
	path := "/path/to/protected.yaml"
	cause := errors.New("permission denied")
	err := ErrConfigPermissionDenied(path, cause)

	if !strings.Contains(err.Message, path) {
		t.Errorf("expected message to contain path %q, got %q", path, err.Message)
	}
	if err.Cause != cause {
		t.Error("expected cause to be wrapped")
	}
	if !strings.Contains(err.Hint, "permission") {
		t.Errorf("expected hint to mention permissions, got %q", err.Hint)
	}
}

func TestErrConfigEmpty(t *testing.T) {
	path := "/path/to/empty.yaml"
	err := ErrConfigEmpty(path)

	if err.Type != tracker.ErrTypeConfiguration {
		t.Errorf("expected ErrTypeConfiguration, got %v", err.Type)
	}
	if !strings.Contains(err.Message, "empty") {
		t.Errorf("expected message to mention 'empty', got %q", err.Message)
	}
}

func TestErrConfigInvalidYAML(t *testing.T) {
	path := "/path/to/invalid.yaml"
	cause := errors.New("[5:3] unexpected mapping key")
	err := ErrConfigInvalidYAML(path, cause)

	if err.Type != tracker.ErrTypeInvalidInput {
		t.Errorf("expected ErrTypeInvalidInput, got %v", err.Type)
	}
	// Line/column come from the goccy error format
	if !strings.Contains(err.Message, "line 5") || !strings.Contains(err.Message, "column 3") {
		t.Errorf("expected message to contain extracted line/column, got %q", err.Message)
	}
}

func TestErrConfigInvalidYAML_NoLineInfo(t *testing.T) {
	path := "/path/to/invalid.yaml"
	err := ErrConfigInvalidYAML(path, errors.New("some generic error"))

	if !strings.Contains(err.Message, path) {
		t.Errorf("expected message to contain path %q, got %q", path, err.Message)
	}
	if strings.Contains(err.Message, "line") {
		t.Errorf("expected no line info, got %q", err.Message)
	}
}

func TestErrConfigPathEmpty(t *testing.T) {
	err := ErrConfigPathEmpty()

	if err.Type != tracker.ErrTypeInvalidInput {
		t.Errorf("expected ErrTypeInvalidInput, got %v", err.Type)
	}
	if !strings.Contains(err.Message, "empty") {
		t.Errorf("expected message to mention 'empty', got %q", err.Message)
	}
}

func TestWrapReadError(t *testing.T) {
	notExist := WrapReadError("/missing.yaml", os.ErrNotExist)
	if notExist.Type != tracker.ErrTypeNotFound {
		t.Errorf("expected ErrTypeNotFound, got %v", notExist.Type)
	}
	if !strings.Contains(notExist.Message, "not found") {
		t.Errorf("expected not-found message, got %q", notExist.Message)
	}

	perm := WrapReadError("/protected.yaml", os.ErrPermission)
	if !strings.Contains(perm.Message, "cannot read") {
		t.Errorf("expected permission message, got %q", perm.Message)
	}

	other := WrapReadError("/odd.yaml", errors.New("io weirdness"))
	if other.Cause == nil {
		t.Error("expected cause to be preserved")
	}
}
