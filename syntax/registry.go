package syntax

import (
	"fmt"
	"sort"
)

// Registry is a key to definition table. It is read-only once built and may
// be shared by any number of concurrent parses.
type Registry struct {
	root string
	defs map[string]*Definition
}

// NewRegistry builds a registry keyed by definition ID and checks that the
// root exists and that every child key resolves. Children providers are
// called once each for the check; the graph itself is never expanded.
func NewRegistry(root string, defs ...*Definition) (*Registry, error) {
	r := &Registry{
		root: root,
		defs: make(map[string]*Definition, len(defs)),
	}
	for _, d := range defs {
		if d == nil {
			return nil, fmt.Errorf("nil definition")
		}
		if d.ID == "" {
			return nil, fmt.Errorf("definition with keyword %q has no id", d.Keyword)
		}
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate definition %q", d.ID)
		}
		if err := checkShape(d); err != nil {
			return nil, err
		}
		r.defs[d.ID] = d
	}
	if _, ok := r.defs[root]; !ok {
		return nil, fmt.Errorf("root definition %q not registered", root)
	}
	for _, d := range defs {
		for _, key := range d.ChildKeys() {
			if _, ok := r.defs[key]; !ok {
				return nil, fmt.Errorf("definition %q: unknown child %q", d.ID, key)
			}
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid schema. It is
// meant for package-level schemas built from literals.
func MustRegistry(root string, defs ...*Definition) *Registry {
	r, err := NewRegistry(root, defs...)
	if err != nil {
		panic(err)
	}
	return r
}

func checkShape(d *Definition) error {
	switch d.Strategy {
	case StrategyBlock:
		if d.Keyword == "" {
			return fmt.Errorf("block definition %q has no keyword", d.ID)
		}
	case StrategyKeywordPair:
		if d.Keyword == "" || d.EndKeyword == "" {
			return fmt.Errorf("keyword definition %q needs a keyword and an end keyword", d.ID)
		}
	case StrategyStub:
		return fmt.Errorf("definition %q uses the stub strategy", d.ID)
	}
	return nil
}

func (r *Registry) Root() *Definition {
	return r.defs[r.root]
}

func (r *Registry) Lookup(key string) *Definition {
	return r.defs[key]
}

// Children resolves the child keys of d in declaration order.
func (r *Registry) Children(d *Definition) []*Definition {
	keys := d.ChildKeys()
	children := make([]*Definition, 0, len(keys))
	for _, key := range keys {
		if child := r.defs[key]; child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Definitions returns every registered definition sorted by ID.
func (r *Registry) Definitions() []*Definition {
	all := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all
}
