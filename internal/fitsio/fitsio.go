// Package fitsio reads FITS headers. It is deliberately tolerant: real
// instrument headers are routinely malformed, so parsing skips unreadable
// cards, accepts a missing END record at end of file, and never decodes
// data units. Gzip-compressed files are handled transparently.
package fitsio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexrudy/observer/internal/fits"
)

const (
	blockSize = 2880
	cardSize  = 80
	cardsPer  = blockSize / cardSize
)

// ReadHeaders returns one header per HDU in the file, primary first. It
// satisfies fits.Loader.
func ReadHeaders(path string) ([]*fits.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fits file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open fits file %q: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return readHDUs(bufio.NewReader(r), path)
}

func readHDUs(r *bufio.Reader, path string) ([]*fits.Header, error) {
	var headers []*fits.Header
	for i := 0; ; i++ {
		h, last, err := readHeader(r, path, i)
		if err != nil {
			return nil, fmt.Errorf("read %q HDU %d: %w", path, i, err)
		}
		if h == nil {
			break
		}
		headers = append(headers, h)
		if last {
			break
		}
		if err := skipData(r, h); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				// Truncated data unit; keep the headers we have.
				break
			}
			return nil, fmt.Errorf("read %q HDU %d: %w", path, i, err)
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("read %q: no header found", path)
	}
	return headers, nil
}

// readHeader parses one HDU header. It returns (nil, _, nil) on a clean
// end of file before any card, and last=true when the stream ended inside
// the header (missing END is tolerated).
func readHeader(r *bufio.Reader, path string, hdu int) (*fits.Header, bool, error) {
	h := fits.NewHeader(path)
	block := make([]byte, blockSize)
	read := false
	for {
		_, err := io.ReadFull(r, block)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// Missing END record; keep whatever cards we parsed.
			if !read {
				return nil, true, nil
			}
			return h, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		read = true
		for i := 0; i < cardsPer; i++ {
			card := string(block[i*cardSize : (i+1)*cardSize])
			name := strings.TrimRight(card[:8], " ")
			if name == "END" {
				return h, false, nil
			}
			if hdu > 0 && h.Len() == 0 && i == 0 && name != "XTENSION" {
				// Trailing non-FITS bytes after the last HDU.
				return nil, true, nil
			}
			if name == "" || name == "COMMENT" || name == "HISTORY" {
				continue
			}
			if len(card) < 10 || card[8:10] != "= " {
				continue
			}
			value, comment := parseValue(card[10:])
			h.SetCard(fits.Card{Name: name, Value: value, Comment: comment})
		}
	}
}

// parseValue parses the value/comment portion of a card.
func parseValue(s string) (any, string) {
	s = strings.TrimLeft(s, " ")
	if strings.HasPrefix(s, "'") {
		return parseString(s[1:])
	}
	value := s
	comment := ""
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		value = s[:idx]
		comment = strings.TrimSpace(s[idx+1:])
	}
	return parseLiteral(strings.TrimSpace(value)), comment
}

// parseString scans a quoted FITS string, where '' escapes a quote and
// trailing pad spaces are not significant.
func parseString(s string) (any, string) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			i++
			break
		}
		b.WriteByte(s[i])
		i++
	}
	comment := ""
	if idx := strings.IndexByte(s[i:], '/'); idx >= 0 {
		comment = strings.TrimSpace(s[i+idx+1:])
	}
	return strings.TrimRight(b.String(), " "), comment
}

func parseLiteral(s string) any {
	switch s {
	case "":
		return nil
	case "T":
		return true
	case "F":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// Fortran-style exponents (1.0D3) appear in older headers.
	float := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, s)
	if f, err := strconv.ParseFloat(float, 64); err == nil {
		return f
	}
	return s
}

// skipData discards the HDU's data unit, whose size follows from BITPIX,
// NAXIS*, PCOUNT, and GCOUNT.
func skipData(r *bufio.Reader, h *fits.Header) error {
	size := dataSize(h)
	if size == 0 {
		return nil
	}
	padded := (size + blockSize - 1) / blockSize * blockSize
	_, err := io.CopyN(io.Discard, r, padded)
	return err
}

func dataSize(h *fits.Header) int64 {
	bitpix := intValue(h, "BITPIX", 0)
	naxis := intValue(h, "NAXIS", 0)
	if bitpix == 0 || naxis == 0 {
		return 0
	}
	elems := int64(1)
	for i := int64(1); i <= naxis; i++ {
		n := intValue(h, fmt.Sprintf("NAXIS%d", i), 0)
		if n == 0 {
			return 0
		}
		elems *= n
	}
	pcount := intValue(h, "PCOUNT", 0)
	gcount := intValue(h, "GCOUNT", 1)
	if bitpix < 0 {
		bitpix = -bitpix
	}
	return bitpix / 8 * gcount * (pcount + elems)
}

func intValue(h *fits.Header, key string, def int64) int64 {
	v, ok := h.Get(key)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	}
	return def
}

// HDUInfo summarizes one HDU for the info command.
type HDUInfo struct {
	Index  int
	Name   string
	Type   string
	Cards  int
	BitPix int64
	Dims   []int64
}

// Info returns a summary of every HDU in the file.
func Info(path string) ([]HDUInfo, error) {
	headers, err := ReadHeaders(path)
	if err != nil {
		return nil, err
	}
	infos := make([]HDUInfo, len(headers))
	for i, h := range headers {
		info := HDUInfo{
			Index:  i,
			Name:   "PRIMARY",
			Type:   "PRIMARY",
			Cards:  h.Len(),
			BitPix: intValue(h, "BITPIX", 0),
		}
		if i > 0 {
			info.Type = h.Str("XTENSION")
			info.Name = h.Str("EXTNAME")
		}
		naxis := intValue(h, "NAXIS", 0)
		for n := int64(1); n <= naxis; n++ {
			info.Dims = append(info.Dims, intValue(h, fmt.Sprintf("NAXIS%d", n), 0))
		}
		infos[i] = info
	}
	return infos, nil
}
