package formats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// Version identifies a historical export layout.
type Version int

const (
	V0 Version = iota
	V1
	V2
	V3
	V4
)

// Base is the contract-only parser. It yields empty transactions and is
// not meant for real statements.
const Base Version = -1

// DefaultVersion is used when nothing else names a layout.
const DefaultVersion = V3

func (v Version) String() string {
	if v == Base {
		return "base"
	}
	return "v" + strconv.Itoa(int(v))
}

// Info describes one layout and how to build its parser.
type Info struct {
	Version     Version
	Aliases     []string
	Description string
	build       func(rowSource) Parser
}

// Name returns the canonical name, e.g. "v3".
func (i Info) Name() string { return i.Version.String() }

// Registry maps layout names and aliases to layouts.
type Registry struct {
	byName    map[string]Info
	byVersion map[Version]Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]Info),
		byVersion: make(map[Version]Info),
	}
}

// Register adds a layout under its canonical name, its bare number and its
// aliases. Panics on a duplicate version or name.
func (r *Registry) Register(info Info) {
	if _, ok := r.byVersion[info.Version]; ok {
		panic("duplicate format version: " + info.Name())
	}
	r.byVersion[info.Version] = info

	names := []string{info.Name()}
	if info.Version >= 0 {
		names = append(names, strconv.Itoa(int(info.Version)))
	}
	names = append(names, info.Aliases...)
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := r.byName[key]; ok {
			panic("duplicate format name: " + key)
		}
		r.byName[key] = info
	}
}

// Lookup finds a layout by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (Info, bool) {
	info, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return info, ok
}

// Parse resolves name to a Version.
func (r *Registry) Parse(name string) (Version, error) {
	info, ok := r.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(r.names(), ", "))
	}
	return info.Version, nil
}

// New constructs the parser for v over rows.
func (r *Registry) New(v Version, rows []model.RawRow) (Parser, error) {
	info, ok := r.byVersion[v]
	if !ok {
		return nil, fmt.Errorf("unknown format version %d", int(v))
	}
	src, err := newRowSource(rows)
	if err != nil {
		return nil, err
	}
	return info.build(src), nil
}

// All returns every registered layout ordered by version, Base excluded.
func (r *Registry) All() []Info {
	var infos []Info
	for v, info := range r.byVersion {
		if v == Base {
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Version < infos[j].Version })
	return infos
}

func (r *Registry) names() []string {
	var names []string
	for _, info := range r.All() {
		names = append(names, info.Name())
		names = append(names, info.Aliases...)
	}
	return names
}

// DefaultRegistry returns a registry with every built-in layout.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Info{
		Version:     Base,
		Description: "contract only, extracts nothing",
		build:       func(s rowSource) Parser { return &baseParser{s} },
	})
	r.Register(Info{
		Version:     V0,
		Aliases:     []string{"old", "legacy"},
		Description: "legacy card export; amount negated, cardholder first name",
		build:       func(s rowSource) Parser { return &v0Parser{s} },
	})
	r.Register(Info{
		Version:     V1,
		Aliases:     []string{"new"},
		Description: "date,payee,cardholder,card,amount; amount negated",
		build:       func(s rowSource) Parser { return &v1Parser{s} },
	})
	r.Register(Info{
		Version:     V2,
		Aliases:     []string{"new2"},
		Description: "transaction date,post date,description,category,type,amount",
		build:       func(s rowSource) Parser { return &v2Parser{s} },
	})
	r.Register(Info{
		Version:     V3,
		Aliases:     []string{"default"},
		Description: "date,ref,amount,payee,memo; ref is the second token",
		build:       func(s rowSource) Parser { return &v3Parser{s} },
	})
	r.Register(Info{
		Version:     V4,
		Aliases:     []string{"2022"},
		Description: "2022+ export; multi-line payee cell, ref and memo in columns 10-11",
		build:       func(s rowSource) Parser { return &v4Parser{s} },
	})
	return r
}

var defaultRegistry = DefaultRegistry()

// ParseVersion resolves a layout name or alias using the default registry.
func ParseVersion(name string) (Version, error) {
	return defaultRegistry.Parse(name)
}

// New constructs the parser for v using the default registry. It fails with
// a *HeaderError when the first row looks like column headers.
func New(v Version, rows []model.RawRow) (Parser, error) {
	return defaultRegistry.New(v, rows)
}

// Versions lists the built-in layouts.
func Versions() []Info {
	return defaultRegistry.All()
}
