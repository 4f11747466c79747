package fits

import (
	"os"
	"path/filepath"
	"sort"
)

// Loader produces zero or more headers from one file, one per HDU. It is
// the engine's only window onto the filesystem for header data.
type Loader func(path string) ([]*Header, error)

// WarnFunc receives non-fatal diagnostics. The engine never writes to
// stderr itself; callers install a sink with SetWarnFunc.
type WarnFunc func(format string, args ...any)

// HeaderTable is an ordered collection of headers. Search returns new
// tables; Normalize fills missing keywords on the shared headers in place.
type HeaderTable struct {
	headers []*Header
	warn    WarnFunc
}

// NewTable returns an empty table.
func NewTable(headers ...*Header) *HeaderTable {
	return &HeaderTable{headers: headers}
}

// ReadTable loads every file with the loader into a fresh table.
func ReadTable(load Loader, files []string) (*HeaderTable, error) {
	t := NewTable()
	if err := t.Read(load, files); err != nil {
		return nil, err
	}
	return t, nil
}

// SetWarnFunc installs a sink for non-fatal diagnostics. Derived tables
// and registries inherit it.
func (t *HeaderTable) SetWarnFunc(fn WarnFunc) { t.warn = fn }

func (t *HeaderTable) warnf(format string, args ...any) {
	if t.warn != nil {
		t.warn(format, args...)
	}
}

// derived returns an empty table sharing this table's warning sink.
func (t *HeaderTable) derived() *HeaderTable {
	return &HeaderTable{warn: t.warn}
}

// Len returns the number of headers.
func (t *HeaderTable) Len() int { return len(t.headers) }

// Headers returns the underlying headers in order.
func (t *HeaderTable) Headers() []*Header { return t.headers }

// Append adds headers to the table.
func (t *HeaderTable) Append(headers ...*Header) {
	t.headers = append(t.headers, headers...)
}

// Files returns the identifying file name of every header, in order.
func (t *HeaderTable) Files() []string {
	files := make([]string, len(t.headers))
	for i, h := range t.headers {
		files[i] = h.File()
	}
	return files
}

// Read loads every HDU header of every file and appends them to the table.
// Each header is stamped with FILENAME (basename) and OPENNAME (path
// relative to the working directory) unless the file already carries those
// keywords.
func (t *HeaderTable) Read(load Loader, files []string) error {
	for _, file := range files {
		headers, err := load(file)
		if err != nil {
			return err
		}
		for _, h := range headers {
			h.SetDefault(KeyFileName, filepath.Base(file), "original file name")
			h.SetDefault(KeyOpenName, openName(file), "opened file name")
			t.headers = append(t.headers, h)
		}
	}
	return nil
}

func openName(file string) string {
	wd, err := os.Getwd()
	if err != nil {
		return file
	}
	rel, err := filepath.Rel(wd, file)
	if err != nil {
		return file
	}
	return rel
}

// NormalizeOptions controls missing-keyword handling in Normalize.
type NormalizeOptions struct {
	// Blank is the value stored for missing keywords.
	Blank string

	// Quiet suppresses the per-keyword warning.
	Quiet bool

	// Strict returns a MissingKeyError instead of filling.
	Strict bool
}

// Normalize ensures every header carries every requested keyword (plus
// OPENNAME), filling absences with opts.Blank. The fill mutates the shared
// headers, not just this table's view of them. Returns the table for
// chaining.
func (t *HeaderTable) Normalize(keywords []string, opts NormalizeOptions) (*HeaderTable, error) {
	keys := make([]string, 0, len(keywords)+1)
	keys = append(keys, keywords...)
	if !containsKey(keys, KeyOpenName) {
		keys = append(keys, KeyOpenName)
	}
	for _, h := range t.headers {
		for _, k := range keys {
			if h.Has(k) {
				continue
			}
			if opts.Strict {
				return nil, &MissingKeyError{Key: k, File: h.File()}
			}
			if !opts.Quiet {
				t.warnf("keyword %q missing from file %q", k, h.File())
			}
			h.Set(k, opts.Blank)
		}
	}
	return t, nil
}

// Search returns a new table holding only the headers that satisfy every
// criterion. An OPENNAME Present criterion is injected unless the caller
// supplies one, so every searched table still identifies each header's
// source. A header missing a required keyword is warned about and
// excluded, always.
func (t *HeaderTable) Search(criteria ...Criterion) *HeaderTable {
	if !criteriaHaveKey(criteria, KeyOpenName) {
		withOpen := make([]Criterion, 0, len(criteria)+1)
		withOpen = append(withOpen, Present(KeyOpenName))
		withOpen = append(withOpen, criteria...)
		criteria = withOpen
	}
	out := t.derived()
	for _, h := range t.headers {
		keep := true
		for _, c := range criteria {
			if !c.match(h, t.warnf) {
				keep = false
			}
		}
		if keep {
			out.headers = append(out.headers, h)
		}
	}
	return out
}

// Group partitions the table's headers into a registry keyed by spec.
func (t *HeaderTable) Group(spec KeySpec) *Registry {
	r := NewRegistry(spec)
	r.warn = t.warn
	for _, h := range t.headers {
		r.Add(h)
	}
	return r
}

// Rows builds log-style rows: one row per header with a leading file
// column followed by the requested keywords. A nil order uses the sorted
// keywords of the first header, minus OPENNAME. The returned columns
// include the leading "file" column.
func (t *HeaderTable) Rows(order []string) (columns []string, rows [][]string) {
	if order == nil && len(t.headers) > 0 {
		for _, k := range t.headers[0].Keys() {
			if k != KeyOpenName {
				order = append(order, k)
			}
		}
		sort.Strings(order)
	}
	columns = append([]string{"file"}, order...)
	rows = make([][]string, len(t.headers))
	for i, h := range t.headers {
		row := make([]string, 0, len(columns))
		row = append(row, h.Str(KeyOpenName))
		for _, k := range order {
			row = append(row, h.Str(k))
		}
		rows[i] = row
	}
	return columns, rows
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func criteriaHaveKey(criteria []Criterion, key string) bool {
	for _, c := range criteria {
		if c.key == key {
			return true
		}
	}
	return false
}
