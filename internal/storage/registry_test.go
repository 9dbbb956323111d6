package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultRegistry(t *testing.T) {
	want := []string{"json", "sqlite"}
	if got := ListBackends(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListBackends() = %v, want %v", got, want)
	}

	backend, err := Open("json", filepath.Join(t.TempDir(), "tasks.json"), nil)
	if err != nil {
		t.Fatalf("Open(json) failed: %v", err)
	}
	if backend.Name() != "json" {
		t.Errorf("Name() = %q, want json", backend.Name())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	factory := func(path string, logger *log.Logger) (Backend, error) {
		return NewJSONFile(path, logger), nil
	}

	if err := r.Register("mem", factory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("mem", factory); err == nil {
		t.Error("duplicate Register: expected error, got nil")
	}
	if _, err := r.Create("missing", "x", nil); err == nil {
		t.Error("Create of unknown backend: expected error, got nil")
	}
	if _, err := r.Create("mem", filepath.Join(t.TempDir(), "t.json"), nil); err != nil {
		t.Errorf("Create failed: %v", err)
	}
}
