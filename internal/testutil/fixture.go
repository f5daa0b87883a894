package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ProgramsDir returns the absolute path of testdata/programs at the
// module root, found by walking up from the working directory.
func ProgramsDir(t testing.TB) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata", "programs")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("module root not found")
		}
		dir = parent
	}
}

// ReadProgram returns the contents of testdata/programs/name.
func ReadProgram(t testing.TB, name string) []byte {
	t.Helper()
	path := filepath.Join(ProgramsDir(t), name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read program %s: %v", path, err)
	}
	return data
}
