package registry

import (
	"context"
	"sort"
)

// Memory is an in-process Client, mostly useful in tests.
type Memory struct {
	components map[string]Component
	sources    map[string]string
}

// NewMemory returns an empty Memory client.
func NewMemory() *Memory {
	return &Memory{
		components: map[string]Component{},
		sources:    map[string]string{},
	}
}

// Add registers a component and its source.
func (m *Memory) Add(c Component, source string) *Memory {
	m.components[c.Name] = c
	m.sources[c.Name] = source
	return m
}

// List returns all component names in sorted order.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.components))
	for name := range m.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Metadata returns a copy of the named component's metadata.
func (m *Memory) Metadata(ctx context.Context, name string) (*Component, error) {
	c, ok := m.components[name]
	if !ok {
		return nil, notFound(name)
	}
	return &c, nil
}

// Source returns the registered source of the named component.
func (m *Memory) Source(ctx context.Context, name string) (string, error) {
	src, ok := m.sources[name]
	if !ok {
		return "", notFound(name)
	}
	return src, nil
}
