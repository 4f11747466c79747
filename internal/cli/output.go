package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/natefinch/atomic"
)

// writeOutput renders to the output file when path is non-empty, writing
// it atomically so a partially written log never replaces a previous one,
// and to stdout otherwise. It reports whether a file was written.
func writeOutput(o *IO, path string, render func(w io.Writer) error) (bool, error) {
	if path == "" {
		return false, render(o.Out())
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return false, err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return false, fmt.Errorf("write %q: %w", path, err)
	}
	return true, nil
}
