// Package fitstest builds small FITS files for tests.
package fitstest

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alexrudy/observer/internal/fits"
)

const (
	blockSize = 2880
	cardSize  = 80
)

// WriteFITS writes a header-only FITS file whose primary header carries
// the given cards after the required structural cards.
func WriteFITS(t testing.TB, path string, cards ...fits.Card) {
	t.Helper()
	WriteMEF(t, path, cards)
}

// WriteMEF writes a multi-extension FITS file, one header per HDU. The
// first HDU is primary, the rest are IMAGE extensions. No HDU carries
// data.
func WriteMEF(t testing.TB, path string, hdus ...[]fits.Card) {
	t.Helper()
	var buf bytes.Buffer
	for i, cards := range hdus {
		writeHeader(&buf, i == 0, cards)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fits file: %v", err)
	}
}

// WriteRaw writes arbitrary bytes, for malformed-input tests.
func WriteRaw(t testing.TB, path string, body []byte) {
	t.Helper()
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

// WriteFITSGz writes a gzip-compressed header-only FITS file.
func WriteFITSGz(t testing.TB, path string, cards ...fits.Card) {
	t.Helper()
	var buf bytes.Buffer
	writeHeader(&buf, true, cards)

	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	if _, err := gz.Write(buf.Bytes()); err != nil {
		t.Fatalf("compress fits file: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("compress fits file: %v", err)
	}
	if err := os.WriteFile(path, gzBuf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fits file: %v", err)
	}
}

func writeHeader(buf *bytes.Buffer, primary bool, cards []fits.Card) {
	start := buf.Len()
	if primary {
		writeCard(buf, fits.Card{Name: "SIMPLE", Value: true, Comment: "conforms to FITS standard"})
	} else {
		writeCard(buf, fits.Card{Name: "XTENSION", Value: "IMAGE", Comment: "image extension"})
	}
	writeCard(buf, fits.Card{Name: "BITPIX", Value: int64(8)})
	writeCard(buf, fits.Card{Name: "NAXIS", Value: int64(0)})
	for _, c := range cards {
		writeCard(buf, c)
	}
	writeCard(buf, fits.Card{Name: "END"})
	for (buf.Len()-start)%blockSize != 0 {
		buf.WriteByte(' ')
	}
}

func writeCard(buf *bytes.Buffer, c fits.Card) {
	var card string
	switch {
	case c.Name == "END":
		card = "END"
	case c.Value == nil:
		card = fmt.Sprintf("%-8s=", c.Name)
	default:
		card = fmt.Sprintf("%-8s= %20s", c.Name, valueField(c.Value))
		if c.Comment != "" {
			card += " / " + c.Comment
		}
	}
	if len(card) > cardSize {
		card = card[:cardSize]
	}
	buf.WriteString(card)
	buf.WriteString(strings.Repeat(" ", cardSize-len(card)))
}

func valueField(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(x, "'", "''"))
	case bool:
		if x {
			return "T"
		}
		return "F"
	default:
		return fmt.Sprintf("%v", x)
	}
}
