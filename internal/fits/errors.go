package fits

import (
	"errors"
	"fmt"
)

var (
	// ErrUngroupedKeyAccess is returned by Group.KeyValues on a
	// list-defined group, which carries no homogeneity guarantee.
	ErrUngroupedKeyAccess = errors.New("list group has no homogeneous key values")

	// ErrUnknownGroup is returned when a registry operation names a key
	// that has no entry.
	ErrUnknownGroup = errors.New("group not found")
)

// MissingKeyError reports a required keyword absent from a header during
// strict normalization.
type MissingKeyError struct {
	Key  string
	File string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("keyword %q not in file %q", e.Key, e.File)
}

// DuplicateGroupError reports an explicit group insertion whose key already
// names a registry entry. Explicit groups are never silently merged.
type DuplicateGroupError struct {
	Key string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("group with key %q already exists", e.Key)
}

// HeterogeneityViolation reports an append whose header does not share the
// group's key.
type HeterogeneityViolation struct {
	Want string
	Got  string
	File string
}

func (e *HeterogeneityViolation) Error() string {
	return fmt.Sprintf("header from %q has key %q, group key is %q", e.File, e.Got, e.Want)
}

// MalformedCriterionError reports a search criterion value of an
// unsupported type.
type MalformedCriterionError struct {
	Key   string
	Value any
}

func (e *MalformedCriterionError) Error() string {
	return fmt.Sprintf("unsupported criterion for keyword %q: %T", e.Key, e.Value)
}
