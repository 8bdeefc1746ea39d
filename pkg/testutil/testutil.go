// Package testutil provides test helpers shared by dotlink package tests:
// filesystem tree builders and a fault-injecting wrapper around types.FS.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile creates a file with parent directories, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// CreateUnit creates a unit directory under sourceDir with the given files
// (relative path -> content) and returns its path.
func CreateUnit(t *testing.T, sourceDir, name string, files map[string]string) string {
	t.Helper()
	unitDir := filepath.Join(sourceDir, name)
	require.NoError(t, os.MkdirAll(unitDir, 0755))
	for rel, content := range files {
		WriteFile(t, filepath.Join(unitDir, rel), content)
	}
	return unitDir
}

// ReadFile reads a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// IsSymlinkTo asserts-friendly check that path is a symlink resolving to want.
func IsSymlinkTo(t *testing.T, path, want string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	wantResolved, err := filepath.EvalSymlinks(want)
	if err != nil {
		return false
	}
	return resolved == wantResolved
}
