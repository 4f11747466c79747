package fits

import (
	"fmt"
	"sort"
)

// Registry is the set of groups produced by one Group call. Group keys are
// unique; adding a header whose key already exists appends to the existing
// group, while adding an explicit group under an occupied key is an error.
type Registry struct {
	spec   KeySpec
	groups map[string]*Group
	warn   WarnFunc
}

// NewRegistry returns an empty registry grouping under spec.
func NewRegistry(spec KeySpec) *Registry {
	return &Registry{spec: spec, groups: make(map[string]*Group)}
}

// Spec returns the registry's key spec.
func (r *Registry) Spec() KeySpec { return r.spec }

// Len returns the number of groups.
func (r *Registry) Len() int { return len(r.groups) }

func (r *Registry) warnf(format string, args ...any) {
	if r.warn != nil {
		r.warn(format, args...)
	}
}

// KeyFor computes the group key a header would be filed under.
func (r *Registry) KeyFor(h *Header) string { return r.spec.Key(h) }

// Add files a header into its group, creating the group when the key is
// new, and returns the key so callers can chain membership checks.
func (r *Registry) Add(h *Header) string {
	key := r.spec.Key(h)
	if g, ok := r.groups[key]; ok {
		g.append(h)
	} else {
		r.groups[key] = newGroup(h, key, r.spec)
	}
	return key
}

// AddGroup inserts a pre-built group under its own key. Inserting over an
// existing key is a DuplicateGroupError, never a silent merge.
func (r *Registry) AddGroup(g *Group) error {
	if _, ok := r.groups[g.Key()]; ok {
		return &DuplicateGroupError{Key: g.Key()}
	}
	r.groups[g.Key()] = g
	return nil
}

// AddList builds a list-defined group from the file list at path and
// inserts it unless it is redundant: empty lists are skipped, and so are
// lists whose members are exactly the members of one existing homogeneous
// group. Returns the group key and whether the group was inserted.
func (r *Registry) AddList(path string, load Loader) (string, bool, error) {
	g, err := NewListGroup(path, r.spec, load)
	if err != nil {
		return "", false, err
	}
	if g.Len() == 0 {
		r.warnf("list %q is empty, skipping", path)
		return g.Key(), false, nil
	}
	if r.HasGroup(g.Headers()...) {
		r.warnf("list %q matches an existing group, skipping", path)
		return g.Key(), false, nil
	}
	if err := r.AddGroup(g); err != nil {
		return g.Key(), false, err
	}
	return g.Key(), true, nil
}

// IsGroup reports whether the given headers would all share one group key
// under the registry's keywords. False for an empty argument list.
func (r *Registry) IsGroup(headers ...*Header) bool {
	if len(headers) == 0 {
		return false
	}
	want := r.spec.Key(headers[0])
	for _, h := range headers[1:] {
		if r.spec.Key(h) != want {
			return false
		}
	}
	return true
}

// HasGroup reports whether the given headers are exactly the membership of
// an existing group: they share one key, the key names a registry entry,
// and the entry's file set equals the headers' file set, order
// independent.
func (r *Registry) HasGroup(headers ...*Header) bool {
	if !r.IsGroup(headers...) {
		return false
	}
	g, ok := r.groups[r.spec.Key(headers[0])]
	if !ok {
		return false
	}
	have := append([]string(nil), g.Files()...)
	want := make([]string, len(headers))
	for i, h := range headers {
		want[i] = h.File()
	}
	sort.Strings(have)
	sort.Strings(want)
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// Get returns the group for a key.
func (r *Registry) Get(key string) (*Group, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// Discard removes the entry for key. Discarding an absent key is an error.
func (r *Registry) Discard(key string) error {
	if _, ok := r.groups[key]; !ok {
		return fmt.Errorf("discard %q: %w", key, ErrUnknownGroup)
	}
	delete(r.groups, key)
	return nil
}

// ContainsKey reports whether key names a registry entry.
func (r *Registry) ContainsKey(key string) bool {
	_, ok := r.groups[key]
	return ok
}

// ContainsName reports whether any group's display name equals name.
// List-defined groups are often referenced by name rather than by key.
func (r *Registry) ContainsName(name string) bool {
	for _, g := range r.groups {
		if g.Name() == name {
			return true
		}
	}
	return false
}

// ContainsHeader reports whether the header's key names a registry entry.
func (r *Registry) ContainsHeader(h *Header) bool {
	return r.ContainsKey(r.spec.Key(h))
}

// ContainsValues reports whether a bare keyword/value mapping hashes to an
// existing entry.
func (r *Registry) ContainsValues(values map[string]any) bool {
	return r.ContainsKey(r.spec.KeyForValues(values))
}

// ContainsPath loads the file's primary header and reports whether its key
// names a registry entry.
func (r *Registry) ContainsPath(path string, load Loader) (bool, error) {
	headers, err := load(path)
	if err != nil {
		return false, err
	}
	if len(headers) == 0 {
		return false, nil
	}
	return r.ContainsHeader(headers[0]), nil
}

// Keys returns the group keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Groups returns all groups sorted by display name.
func (r *Registry) Groups() []*Group {
	groups := make([]*Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name() < groups[j].Name() })
	return groups
}

// Homogeneous reports whether the registry holds no list-defined groups.
func (r *Registry) Homogeneous() bool {
	for _, g := range r.groups {
		if g.Kind() == ListDefined {
			return false
		}
	}
	return true
}

// SummaryRow is one group's line in the registry summary.
type SummaryRow struct {
	Name        string
	Values      []string
	Count       int
	ListDefined bool
}

// Summary holds the tabular rendering contract: the keyword columns and
// one row per group. Homogeneous rows come first, sorted by name, with the
// shared value of each keyword; list-defined rows trail with blank keyword
// columns, reflecting their missing homogeneity guarantee.
type Summary struct {
	Keywords []string
	Rows     []SummaryRow
}

// Summary builds the registry's tabular summary. Rendering is left to the
// caller; only row construction and ordering are owned here.
func (r *Registry) Summary() *Summary {
	var homogeneous, lists []*Group
	for _, g := range r.Groups() {
		if g.Kind() == ListDefined {
			lists = append(lists, g)
		} else {
			homogeneous = append(homogeneous, g)
		}
	}

	s := &Summary{Keywords: r.spec.Keywords}
	for _, g := range homogeneous {
		values := make([]string, len(r.spec.Keywords))
		for i, k := range r.spec.Keywords {
			values[i] = g.headers[0].Str(k)
		}
		s.Rows = append(s.Rows, SummaryRow{Name: g.Name(), Values: values, Count: g.Len()})
	}
	for _, g := range lists {
		s.Rows = append(s.Rows, SummaryRow{
			Name:        g.Name(),
			Values:      make([]string, len(r.spec.Keywords)),
			Count:       g.Len(),
			ListDefined: true,
		})
	}
	return s
}
