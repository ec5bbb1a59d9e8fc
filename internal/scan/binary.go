package scan

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// isBinary reports whether the file at path contains binary content. It
// reads the first BinaryDetectionBytes bytes and checks for a null byte,
// matching git's own heuristic (spec section 4.1, step 3). An empty file
// is not considered binary. Safe for concurrent use: no shared state, each
// call opens its own file handle.
func isBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s for binary detection: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, BinaryDetectionBytes)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading %s for binary detection: %w", path, err)
	}
	if n == 0 {
		return false, nil
	}

	return bytes.IndexByte(buf[:n], 0) != -1, nil
}
