package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	// Two H-band files match; discard the first, keep the second.
	r := run(t, dir, "n\ny\n", "inspect", "-i", glob, "FILTER=H")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Inspecting 2 files.")
	r.contains(t, "FILTER = H")
	r.contains(t, "Kept 1 files out of 2.")
}

func TestInspectCommandDefaultKeeps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	// Blank answers keep; end of input stops early and keeps nothing
	// more.
	r := run(t, dir, "\n", "inspect", "-i", glob, "FILTER=H")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Kept 1 files out of 2.")
}

func TestInspectCommandOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)
	out := filepath.Join(dir, "approved.list")

	r := run(t, dir, "y\ny\n", "inspect", "-i", glob, "-o", out, "FILTER=H")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Wrote list to")

	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := strings.Count(string(body), ".fits"); got != 2 {
		t.Errorf("approved list holds %d files, want 2:\n%s", got, body)
	}
}
