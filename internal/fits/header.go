// Package fits implements the header grouping and search engine: ordered
// header records, searchable tables, keyword-derived group keys, and the
// registry that partitions headers into homogeneous and list-defined groups.
//
// The package is purely in-memory. File access happens only through a
// caller-supplied Loader (see HeaderTable.Read and Registry.AddList).
package fits

import (
	"fmt"
	"strconv"
)

// Well-known keywords stamped onto every loaded header.
const (
	// KeyFileName holds the basename of the source file.
	KeyFileName = "FILENAME"

	// KeyOpenName holds the path of the source file as it was opened,
	// relative to the invocation's working directory.
	KeyOpenName = "OPENNAME"
)

// Card is a single header entry. Value is one of string, int64, float64,
// bool, or nil for valueless cards.
type Card struct {
	Name    string
	Value   any
	Comment string
}

// Header is an ordered keyword/value mapping for one HDU, annotated with
// the path of the file it was read from. The path is fixed at construction.
//
// Keyword lookup is case-sensitive. Iteration order is insertion order.
type Header struct {
	cards []Card
	index map[string]int
	path  string
}

// NewHeader returns an empty header for the given source path.
func NewHeader(path string) *Header {
	return &Header{index: make(map[string]int), path: path}
}

// Path returns the source file path this header was loaded from.
func (h *Header) Path() string { return h.path }

// Len returns the number of cards.
func (h *Header) Len() int { return len(h.cards) }

// Has reports whether the keyword is present.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Get returns the value for a keyword and whether it is present.
func (h *Header) Get(name string) (any, bool) {
	i, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return h.cards[i].Value, true
}

// Str returns the uniform string form of a keyword's value, or the empty
// string when the keyword is absent.
func (h *Header) Str(name string) string {
	v, ok := h.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Set stores a value for a keyword, overwriting in place when present and
// appending otherwise.
func (h *Header) Set(name string, value any) {
	h.SetCard(Card{Name: name, Value: value})
}

// SetCard stores a full card, preserving position for existing keywords.
func (h *Header) SetCard(c Card) {
	if i, ok := h.index[c.Name]; ok {
		h.cards[i] = c
		return
	}
	h.index[c.Name] = len(h.cards)
	h.cards = append(h.cards, c)
}

// SetDefault stores a card only when the keyword is absent. It reports
// whether the card was added.
func (h *Header) SetDefault(name string, value any, comment string) bool {
	if h.Has(name) {
		return false
	}
	h.SetCard(Card{Name: name, Value: value, Comment: comment})
	return true
}

// Keys returns the keywords in insertion order.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.cards))
	for i, c := range h.cards {
		keys[i] = c.Name
	}
	return keys
}

// Cards returns a copy of the cards in insertion order.
func (h *Header) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// File returns the best identifier for end-user messages: OPENNAME when
// present, then FILENAME, then the source path.
func (h *Header) File() string {
	if v, ok := h.Get(KeyOpenName); ok {
		return FormatValue(v)
	}
	if v, ok := h.Get(KeyFileName); ok {
		return FormatValue(v)
	}
	return h.path
}

// FormatValue renders a header value as a string. The rule is uniform
// across key computation, search equality, and table rendering: booleans
// render as the FITS logicals T/F, integers in base 10, and floats with
// strconv's shortest 'g' form, so an integer 5 and a float 5.0 always
// stringify identically. Nil renders as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "T"
		}
		return "F"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		// Loaders only produce the types above; render anything else
		// rather than panic.
		return fmt.Sprintf("%v", x)
	}
}
