package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildTree materializes files (path -> content, relative to a fresh
// t.TempDir()) and returns the tree's root. Parent directories are created
// as needed.
func BuildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	return root
}

// BinaryContent returns a small byte sequence containing a null byte,
// suitable for exercising binary-sniff detection in tests.
func BinaryContent() []byte {
	return []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x00, 0x0d, 0x0a}
}
