package fits

import "regexp"

type criterionKind int

const (
	critEquals criterionKind = iota
	critPattern
	critPredicate
	critPresent
	critAbsent
)

// Criterion is one search condition on a single keyword. Criteria are
// built with the constructors below and combine with logical AND in
// HeaderTable.Search.
type Criterion struct {
	key  string
	kind criterionKind
	want string
	re   *regexp.Regexp
	fn   func(any) (bool, error)
}

// Key returns the keyword this criterion applies to.
func (c Criterion) Key() string { return c.key }

// Equals matches headers whose value for key stringifies to the same form
// as value (see FormatValue).
func Equals(key string, value any) Criterion {
	return Criterion{key: key, kind: critEquals, want: FormatValue(value)}
}

// Matches matches headers whose stringified value matches re at the start
// of the value.
func Matches(key string, re *regexp.Regexp) Criterion {
	return Criterion{key: key, kind: critPattern, re: re}
}

// Satisfies matches headers for which fn returns true. A non-nil error is
// reported as a warning and treated as a failed match.
func Satisfies(key string, fn func(any) (bool, error)) Criterion {
	return Criterion{key: key, kind: critPredicate, fn: fn}
}

// Present matches headers that carry the keyword, with any value.
func Present(key string) Criterion {
	return Criterion{key: key, kind: critPresent}
}

// Absent matches headers that do not carry the keyword. Matching headers
// have the keyword filled with the empty string so downstream rendering is
// uniform.
func Absent(key string) Criterion {
	return Criterion{key: key, kind: critAbsent}
}

// NewCriterion builds a criterion from a dynamically typed value, selecting
// the matching mode by type: *regexp.Regexp for pattern matching, a
// predicate func for Satisfies, bool for Present/Absent, and string or
// numeric literals for equality. Unsupported types return a
// MalformedCriterionError.
func NewCriterion(key string, value any) (Criterion, error) {
	switch v := value.(type) {
	case *regexp.Regexp:
		return Matches(key, v), nil
	case func(any) (bool, error):
		return Satisfies(key, v), nil
	case bool:
		if v {
			return Present(key), nil
		}
		return Absent(key), nil
	case string, int, int64, float64:
		return Equals(key, v), nil
	default:
		return Criterion{}, &MalformedCriterionError{Key: key, Value: value}
	}
}

// match evaluates the criterion against one header. It may fill a blank
// value (Absent) and may emit warnings through warnf.
func (c Criterion) match(h *Header, warnf func(format string, args ...any)) bool {
	v, ok := h.Get(c.key)
	if !ok && c.kind != critAbsent {
		// Missing plus required excludes, always. The warning keeps
		// incomplete metadata visible without failing the search.
		warnf("keyword %q missing from file %q", c.key, h.File())
		return false
	}
	switch c.kind {
	case critPresent:
		return true
	case critAbsent:
		if ok {
			return false
		}
		h.Set(c.key, "")
		return true
	case critEquals:
		return FormatValue(v) == c.want
	case critPattern:
		loc := c.re.FindStringIndex(FormatValue(v))
		return loc != nil && loc[0] == 0
	case critPredicate:
		keep, err := c.fn(v)
		if err != nil {
			warnf("criterion on %q failed for file %q: %v", c.key, h.File(), err)
			return false
		}
		return keep
	}
	return false
}
