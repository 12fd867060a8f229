// Package hostlist reads the local list of host names slated for removal.
package hostlist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads the list at path. On failure it returns a nil slice and
// the wrapped error.
func ParseFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader splits r on newlines and trims every line. Order, blank lines
// and duplicates are preserved, so "A\nB\n" yields ["A" "B" ""].
func ParseReader(reader io.Reader) ([]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return ParseBytes(data), nil
}

// ParseBytes parses list content held in memory.
func ParseBytes(data []byte) []string {
	lines := bytes.Split(data, []byte("\n"))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(string(l))
	}
	return out
}
