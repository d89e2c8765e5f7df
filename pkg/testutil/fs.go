package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/provisio/pkg/filesystem"
	"github.com/arthur-debert/provisio/pkg/types"
)

// NewMemoryFS returns an empty in-memory filesystem
func NewMemoryFS() types.FS {
	return filesystem.NewMemory()
}

// ReadFile reads a file from fsys, failing the test if it cannot
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Touch creates an empty file, including parents
func Touch(t *testing.T, fsys types.FS, name string) {
	t.Helper()
	if err := fsys.MkdirAll(path.Dir(name), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", name, err)
	}
	if err := fsys.WriteFile(name, nil, 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
}
