package fits

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

type formatKind int

const (
	formatDefault formatKind = iota
	formatFixed
	formatCustom
)

// Format controls how one keyword's value is rendered in group names.
type Format struct {
	kind formatKind
	prec int
	fn   func(any) string
}

// DefaultFormat renders values with FormatValue.
func DefaultFormat() Format {
	return Format{kind: formatDefault}
}

// FixedPrecision renders numeric values with a fixed number of decimal
// places. Non-numeric values fall back to the default rendering.
func FixedPrecision(prec int) Format {
	return Format{kind: formatFixed, prec: prec}
}

// CustomFormat renders values with the given function.
func CustomFormat(fn func(any) string) Format {
	return Format{kind: formatCustom, fn: fn}
}

// Apply renders a value under the format.
func (f Format) Apply(v any) string {
	switch f.kind {
	case formatFixed:
		switch x := v.(type) {
		case float64:
			return strconv.FormatFloat(x, 'f', f.prec, 64)
		case int:
			return strconv.FormatFloat(float64(x), 'f', f.prec, 64)
		case int64:
			return strconv.FormatFloat(float64(x), 'f', f.prec, 64)
		}
		return FormatValue(v)
	case formatCustom:
		return f.fn(v)
	default:
		return FormatValue(v)
	}
}

// KeySpec defines how headers are grouped: the ordered keyword list, the
// per-keyword display formats, and whether group keys are digested.
//
// Formats shorter than Keywords are padded with the default format. Digest
// replaces the joined pair string with its md5 hex form; this is a
// presentation choice for very long keys, not a semantic one, and a
// collision is a defect rather than a tolerated state.
type KeySpec struct {
	Keywords []string
	Formats  []Format
	Digest   bool
}

// NewKeySpec builds a spec for the given keywords, padding formats with the
// default as needed.
func NewKeySpec(keywords []string, formats ...Format) KeySpec {
	return KeySpec{Keywords: keywords, Formats: formats}
}

// format returns the format for keyword index i.
func (s KeySpec) format(i int) Format {
	if i < len(s.Formats) {
		return s.Formats[i]
	}
	return DefaultFormat()
}

// Key computes the group key for a header under this spec.
func (s KeySpec) Key(h *Header) string {
	return s.keyOf(func(k string) (any, bool) { return h.Get(k) })
}

// KeyForValues computes the group key for a bare keyword/value mapping.
func (s KeySpec) KeyForValues(values map[string]any) string {
	return s.keyOf(func(k string) (any, bool) {
		v, ok := values[k]
		return v, ok
	})
}

// keyOf is total: an absent keyword contributes the empty string, never an
// error. Absence handling belongs to Search and Normalize, not grouping.
func (s KeySpec) keyOf(get func(string) (any, bool)) string {
	var b strings.Builder
	for i, k := range s.Keywords {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		if v, ok := get(k); ok {
			b.WriteString(FormatValue(v))
		}
	}
	key := b.String()
	if s.Digest {
		sum := md5.Sum([]byte(key))
		key = hex.EncodeToString(sum[:])
	}
	return key
}

// ComputeKey computes the undigested group key for a header over the given
// keywords. The result depends only on the keyword order and the header's
// values; map iteration order plays no part.
func ComputeKey(h *Header, keywords []string) string {
	return KeySpec{Keywords: keywords}.Key(h)
}
