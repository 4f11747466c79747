package fits_test

import (
	"testing"

	"github.com/alexrudy/observer/internal/fits"
)

func header(path string, pairs ...any) *fits.Header {
	h := fits.NewHeader(path)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i].(string), pairs[i+1])
	}
	return h
}

func TestComputeKey(t *testing.T) {
	t.Parallel()

	h := header("a.fits", "FILTER", "H", "OBJECT", "M1", "EXPTIME", 10.0)

	got := fits.ComputeKey(h, []string{"FILTER", "OBJECT"})
	if want := "FILTER=H;OBJECT=M1"; got != want {
		t.Errorf("ComputeKey = %q, want %q", got, want)
	}

	// Keyword order defines the key, not insertion order.
	swapped := header("b.fits", "OBJECT", "M1", "FILTER", "H")
	if fits.ComputeKey(swapped, []string{"FILTER", "OBJECT"}) != got {
		t.Error("key depends on card insertion order")
	}
}

func TestComputeKeyMissingKeywordIsTotal(t *testing.T) {
	t.Parallel()

	// A header without FILTER hashes like one with FILTER="".
	bare := header("a.fits", "OBJECT", "M1")
	blank := header("b.fits", "OBJECT", "M1", "FILTER", "")

	keywords := []string{"FILTER", "OBJECT"}
	if fits.ComputeKey(bare, keywords) != fits.ComputeKey(blank, keywords) {
		t.Error("missing keyword does not hash as empty string")
	}
}

func TestKeySpecNumericStringification(t *testing.T) {
	t.Parallel()

	// An int value 5 and a float value 5.0 stringify identically, so
	// logically equal numerics always land in the same group.
	asInt := header("a.fits", "COADDS", int64(5))
	asFloat := header("b.fits", "COADDS", 5.0)

	spec := fits.NewKeySpec([]string{"COADDS"})
	if spec.Key(asInt) != spec.Key(asFloat) {
		t.Error("int 5 and float 5.0 hash differently")
	}
}

func TestKeySpecDigest(t *testing.T) {
	t.Parallel()

	h := header("a.fits", "FILTER", "H")
	plain := fits.KeySpec{Keywords: []string{"FILTER"}}
	digest := fits.KeySpec{Keywords: []string{"FILTER"}, Digest: true}

	if got := len(digest.Key(h)); got != 32 {
		t.Errorf("digest key length = %d, want 32 hex chars", got)
	}
	if digest.Key(h) == plain.Key(h) {
		t.Error("digest key equals plain key")
	}
	if digest.Key(h) != digest.Key(h) {
		t.Error("digest key is not deterministic")
	}
}

func TestKeySpecForValues(t *testing.T) {
	t.Parallel()

	h := header("a.fits", "FILTER", "H", "OBJECT", "M1")
	spec := fits.NewKeySpec([]string{"FILTER", "OBJECT"})

	values := map[string]any{"FILTER": "H", "OBJECT": "M1"}
	if spec.KeyForValues(values) != spec.Key(h) {
		t.Error("bare mapping hashes differently from an equivalent header")
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		format fits.Format
		value  any
		want   string
	}{
		{"default string", fits.DefaultFormat(), "H", "H"},
		{"default float", fits.DefaultFormat(), 2.5, "2.5"},
		{"fixed float", fits.FixedPrecision(2), 2.5, "2.50"},
		{"fixed int", fits.FixedPrecision(1), int64(10), "10.0"},
		{"fixed non-numeric", fits.FixedPrecision(2), "open", "open"},
		{"custom", fits.CustomFormat(func(any) string { return "X" }), 42, "X"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.format.Apply(tt.value); got != tt.want {
				t.Errorf("Apply(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
