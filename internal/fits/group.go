package fits

import (
	"path/filepath"
	"strings"
)

// GroupKind distinguishes the two group semantics held by a registry.
type GroupKind int

const (
	// Homogeneous groups are built incrementally by Registry.Add; every
	// member shares the group key's keyword values exactly.
	Homogeneous GroupKind = iota

	// ListDefined groups come from an explicit file list and carry no
	// homogeneity guarantee.
	ListDefined
)

// Group is one entry in a Registry: either a homogeneous group of headers
// sharing a key, or a list-defined group loaded from an external file
// list. The kind tag replaces subclassing; KeyValues is explicitly
// unavailable for the list variant.
type Group struct {
	kind    GroupKind
	key     string
	spec    KeySpec
	headers []*Header
	list    string
}

func newGroup(first *Header, key string, spec KeySpec) *Group {
	return &Group{kind: Homogeneous, key: key, spec: spec, headers: []*Header{first}}
}

// NewListGroup loads a list-defined group from the file list at listPath.
// The group's key is the list file's basename, sidestepping the keyword
// hash entirely. Member headers are stamped with FILENAME and OPENNAME
// like any loaded header.
func NewListGroup(listPath string, spec KeySpec, load Loader) (*Group, error) {
	files, err := ReadFileList(listPath)
	if err != nil {
		return nil, err
	}
	t := NewTable()
	if err := t.Read(load, files); err != nil {
		return nil, err
	}
	return &Group{
		kind:    ListDefined,
		key:     filepath.Base(listPath),
		spec:    spec,
		headers: t.Headers(),
		list:    listPath,
	}, nil
}

// Kind returns the group's variant.
func (g *Group) Kind() GroupKind { return g.kind }

// Key returns the group key: the keyword hash for homogeneous groups, the
// list file basename for list-defined ones.
func (g *Group) Key() string { return g.key }

// Len returns the number of member headers.
func (g *Group) Len() int { return len(g.headers) }

// Headers returns the member headers in order.
func (g *Group) Headers() []*Header { return g.headers }

// ListPath returns the source list file for list-defined groups, and the
// empty string otherwise.
func (g *Group) ListPath() string { return g.list }

// Files returns the identifying file name of every member.
func (g *Group) Files() []string {
	files := make([]string, len(g.headers))
	for i, h := range g.headers {
		files[i] = h.File()
	}
	return files
}

// Append adds a header after verifying it shares the group's key. A
// mismatch returns a HeterogeneityViolation; list-defined groups accept
// any header, their membership being externally defined.
func (g *Group) Append(h *Header) error {
	if g.kind == Homogeneous {
		if got := g.spec.Key(h); got != g.key {
			return &HeterogeneityViolation{Want: g.key, Got: got, File: h.File()}
		}
	}
	g.headers = append(g.headers, h)
	return nil
}

// append adds a header whose key the caller has already derived.
func (g *Group) append(h *Header) {
	g.headers = append(g.headers, h)
}

// KeyValues returns the keyword→value map shared by every member. All
// members agree by construction, so the first member's values stand for
// the group. List-defined groups return ErrUngroupedKeyAccess.
func (g *Group) KeyValues() (map[string]any, error) {
	if g.kind == ListDefined {
		return nil, ErrUngroupedKeyAccess
	}
	values := make(map[string]any, len(g.spec.Keywords))
	for _, k := range g.spec.Keywords {
		v, _ := g.headers[0].Get(k)
		values[k] = v
	}
	return values, nil
}

// Name returns the display name, safe for use as a filename stem. For
// homogeneous groups it is the formatted keyword values joined with "-",
// spaces replaced by "-". For list-defined groups it is the list file's
// basename without extension.
func (g *Group) Name() string {
	if g.kind == ListDefined {
		base := filepath.Base(g.list)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	parts := make([]string, len(g.spec.Keywords))
	for i, k := range g.spec.Keywords {
		v, _ := g.headers[0].Get(k)
		parts[i] = g.spec.format(i).Apply(v)
	}
	return strings.ReplaceAll(strings.Join(parts, "-"), " ", "-")
}
