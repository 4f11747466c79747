package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGroupCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	r := run(t, dir, "", "group", "-i", glob, "FILTER")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Will group 3 files.")
	r.contains(t, "3 files grouped.")
	r.contains(t, "Name")
	r.contains(t, "FILTER")

	// One row per filter with its member count.
	r.contains(t, "H     H       2")
	r.contains(t, "K     K       1")
}

func TestGroupCommandMultipleKeywords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	r := run(t, dir, "", "group", "-i", glob, "FILTER", "OBJECT")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "H-M1")
	r.contains(t, "K-M1")
}

func TestGroupCommandWithSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	r := run(t, dir, "", "group", "-i", glob, "FILTER=H")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "2 files grouped.")
	if strings.Contains(r.stdout, "K     K") {
		t.Errorf("excluded filter leaked into summary:\n%s", r.stdout)
	}
}

func TestGroupCommandSingle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	r := run(t, dir, "", "group", "-i", glob, "-s", "FILTER")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Will group 1 files.")
}

func TestGroupCommandList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)

	list := filepath.Join(dir, "mixed.list")
	body := filepath.Join(dir, sciName(0)) + "\n" + filepath.Join(dir, sciName(2)) + "\n"
	if err := os.WriteFile(list, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	r := run(t, dir, "", "group", "-i", glob, "--list", list, "FILTER")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "mixed")
}

func TestGroupCommandOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	glob := writeScience(t, dir)
	out := filepath.Join(dir, "groups.txt")

	r := run(t, dir, "", "group", "-i", glob, "-o", out, "FILTER")
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "Wrote log to")

	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(body), "Name") {
		t.Errorf("output file missing header:\n%s", body)
	}
}
