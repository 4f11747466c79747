package fitsio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"
	"github.com/alexrudy/observer/internal/fitstest"

	"github.com/stretchr/testify/require"
)

func TestReadHeaders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "n0001.fits")
	fitstest.WriteFITS(t, path,
		fits.Card{Name: "FILTER", Value: "Kp", Comment: "filter wheel"},
		fits.Card{Name: "EXPTIME", Value: 10.5},
		fits.Card{Name: "COADDS", Value: int64(4)},
		fits.Card{Name: "SHUTTER", Value: true},
		fits.Card{Name: "OBJECT", Value: "NGC 1275"},
	)

	headers, err := fitsio.ReadHeaders(path)
	require.NoError(t, err)
	require.Len(t, headers, 1)

	h := headers[0]
	require.Equal(t, path, h.Path())

	v, ok := h.Get("FILTER")
	require.True(t, ok)
	require.Equal(t, "Kp", v)

	v, _ = h.Get("EXPTIME")
	require.Equal(t, 10.5, v)

	v, _ = h.Get("COADDS")
	require.Equal(t, int64(4), v)

	v, _ = h.Get("SHUTTER")
	require.Equal(t, true, v)

	v, _ = h.Get("OBJECT")
	require.Equal(t, "NGC 1275", v)
}

func TestReadHeadersComments(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "n0001.fits")
	fitstest.WriteFITS(t, path,
		fits.Card{Name: "FILTER", Value: "H", Comment: "filter wheel"},
	)

	headers, err := fitsio.ReadHeaders(path)
	require.NoError(t, err)

	var card fits.Card
	for _, c := range headers[0].Cards() {
		if c.Name == "FILTER" {
			card = c
		}
	}
	require.Equal(t, "filter wheel", card.Comment)
}

func TestReadHeadersQuotedStrings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "n0001.fits")
	fitstest.WriteFITS(t, path,
		fits.Card{Name: "OBSERVER", Value: "O'Neill"},
	)

	headers, err := fitsio.ReadHeaders(path)
	require.NoError(t, err)

	v, _ := headers[0].Get("OBSERVER")
	require.Equal(t, "O'Neill", v)
}

func TestReadHeadersMultiExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mef.fits")
	fitstest.WriteMEF(t, path,
		[]fits.Card{{Name: "FILTER", Value: "H"}},
		[]fits.Card{{Name: "EXTNAME", Value: "SCI"}},
		[]fits.Card{{Name: "EXTNAME", Value: "ERR"}},
	)

	headers, err := fitsio.ReadHeaders(path)
	require.NoError(t, err)
	require.Len(t, headers, 3)
	require.Equal(t, "SCI", headers[1].Str("EXTNAME"))
	require.Equal(t, "ERR", headers[2].Str("EXTNAME"))
}

func TestReadHeadersGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "n0001.fits.gz")
	fitstest.WriteFITSGz(t, path,
		fits.Card{Name: "FILTER", Value: "J"},
	)

	headers, err := fitsio.ReadHeaders(path)
	require.NoError(t, err)
	require.Equal(t, "J", headers[0].Str("FILTER"))
}

func TestReadHeadersMissingEnd(t *testing.T) {
	t.Parallel()

	// A header block with no END record still yields its cards.
	dir := t.TempDir()
	full := filepath.Join(dir, "full.fits")
	fitstest.WriteFITS(t, full, fits.Card{Name: "FILTER", Value: "H"})

	body, err := os.ReadFile(full)
	require.NoError(t, err)
	noEnd := filepath.Join(dir, "noend.fits")
	fitstest.WriteRaw(t, noEnd, bytes.Replace(body, []byte("END"), []byte("   "), 1))

	headers, err := fitsio.ReadHeaders(noEnd)
	require.NoError(t, err)
	require.Equal(t, "H", headers[0].Str("FILTER"))
}

func TestReadHeadersEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.fits")
	fitstest.WriteRaw(t, path, nil)

	_, err := fitsio.ReadHeaders(path)
	require.Error(t, err)
}

func TestReadHeadersMissingFile(t *testing.T) {
	t.Parallel()

	_, err := fitsio.ReadHeaders(filepath.Join(t.TempDir(), "nope.fits"))
	require.Error(t, err)
}

func TestInfo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mef.fits")
	fitstest.WriteMEF(t, path,
		[]fits.Card{{Name: "FILTER", Value: "H"}},
		[]fits.Card{{Name: "EXTNAME", Value: "SCI"}},
	)

	infos, err := fitsio.Info(path)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	require.Equal(t, 0, infos[0].Index)
	require.Equal(t, "PRIMARY", infos[0].Name)
	require.Equal(t, int64(8), infos[0].BitPix)
	require.Empty(t, infos[0].Dims)

	require.Equal(t, "IMAGE", infos[1].Type)
	require.Equal(t, "SCI", infos[1].Name)
}
