// Package natives is a host-agnostic registry of built-in function
// implementations, grounded on the teacher's internal/interp/builtins
// package (Registry/FunctionInfo/Category/BuiltinFunc): a case-insensitive,
// category-organized map from name to implementation plus a short
// doc string, built once at init time and then queried by whatever
// actually binds the functions into a running engine.
//
// Func deliberately trades in plain Go values (int64, float64, bool, rune,
// string), not *value.Value or *symbols.Function: this package has no
// dependency on internal/value or internal/symbols, so it can be imported
// and tested in isolation the way the teacher's builtins package is.
// internal/engine's natives.go does the boxing/unboxing and prototype
// construction needed to expose a Func as a script-callable Function.
package natives

import (
	"sort"
	"strings"
	"sync"
)

// Category groups related built-ins for discovery/documentation (spec
// §4.9 lists categories of host-extensible natives without naming an
// exhaustive set; this mirrors the teacher's category list). No built-in is
// registered under CategorySystem.
type Category string

const (
	CategoryMath       Category = "math"
	CategoryString     Category = "string"
	CategoryConversion Category = "conversion"
	CategorySystem     Category = "system"
)

// Func is a built-in's implementation: plain-Go arguments in, a plain-Go
// result (or error) out.
type Func func(args []any) (any, error)

// Info is the metadata the teacher's FunctionInfo carries, renamed to
// avoid colliding with this module's own symbols.Function.
type Info struct {
	Name        string
	Category    Category
	Description string
	Fn          Func
}

// Registry is a case-insensitive, category-indexed table of built-ins.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]*Info
	categories map[Category][]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]*Info),
		categories: make(map[Category][]string),
	}
}

// Register adds fn under name (case-insensitive), replacing any existing
// entry of the same name without duplicating its category listing.
func (r *Registry) Register(name string, category Category, description string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.byName[key]; !exists {
		r.categories[category] = append(r.categories[category], name)
	}
	r.byName[key] = &Info{Name: name, Category: category, Description: description, Fn: fn}
}

// Lookup returns the Info registered under name, case-insensitively.
func (r *Registry) Lookup(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byName[strings.ToLower(name)]
	return info, ok
}

// Names returns every registered name in category, sorted.
func (r *Registry) Names(category Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.categories[category]...)
	sort.Strings(names)
	return names
}

// All returns every registered Info, sorted by name, for a host that wants
// to bind the whole registry at once.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Info, 0, len(r.byName))
	for _, info := range r.byName {
		all = append(all, info)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// DefaultRegistry is populated at init with this module's standard
// built-ins (spec §4.9 "the engine ships a small standard library"),
// mirroring the teacher's package-level DefaultRegistry.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry()
	registerMath(DefaultRegistry)
	registerStrings(DefaultRegistry)
	registerConversion(DefaultRegistry)
}
