package loader

import "sort"

// Set is a resolved collection of components and their sources, kept in
// dependency-first order.
type Set struct {
	order   []string
	sources map[string]string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{sources: make(map[string]string)}
}

func (s *Set) add(name, source string) {
	if _, ok := s.sources[name]; ok {
		return
	}
	s.order = append(s.order, name)
	s.sources[name] = source
}

// Len returns the number of components.
func (s *Set) Len() int {
	return len(s.order)
}

// Has reports whether name is in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.sources[name]
	return ok
}

// Source returns the source of name.
func (s *Set) Source(name string) (string, bool) {
	src, ok := s.sources[name]
	return src, ok
}

// Names returns the components with dependencies before dependents.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the component names in lexical order.
func (s *Set) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// Map returns a copy of the name to source mapping.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, len(s.sources))
	for k, v := range s.sources {
		out[k] = v
	}
	return out
}

// Merge adds every component of o that s does not already hold.
func (s *Set) Merge(o *Set) {
	for _, name := range o.order {
		s.add(name, o.sources[name])
	}
}

// Filter returns a new Set holding the components for which keep is true,
// in the same order.
func (s *Set) Filter(keep func(name string) bool) *Set {
	out := NewSet()
	for _, name := range s.order {
		if keep(name) {
			out.add(name, s.sources[name])
		}
	}
	return out
}
