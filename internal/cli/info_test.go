package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitstest"
)

func TestInfoCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "mef.fits")
	fitstest.WriteMEF(t, path,
		[]fits.Card{{Name: "FILTER", Value: "H"}},
		[]fits.Card{{Name: "EXTNAME", Value: "SCI"}},
	)

	r := run(t, dir, "", "info", "-i", path)
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "2 HDUs")
	r.contains(t, "PRIMARY")
	r.contains(t, "SCI")
}

func TestHeadCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "n0001.fits")
	fitstest.WriteFITS(t, path,
		fits.Card{Name: "FILTER", Value: "H", Comment: "filter wheel"},
		fits.Card{Name: "EXPTIME", Value: 10.5},
	)

	r := run(t, dir, "", "head", "-i", path)
	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", r.code, r.stderr)
	}
	r.contains(t, "== ")
	r.contains(t, "FILTER  = H")
	r.contains(t, "filter wheel")
	r.contains(t, "EXPTIME = 10.5")
	r.contains(t, "Examined 1 headers.")
}
