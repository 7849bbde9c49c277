// Package loader resolves a component and its transitive dependencies
// against a registry.Client.
package loader

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/registry"
)

const tracerName = "github.com/starui-dev/star/internal/loader"

type node struct {
	deps   []string
	source string
}

// Loader resolves dependency closures. Metadata and sources are fetched at
// most once per Loader; a Loader is not safe for concurrent use.
type Loader struct {
	client registry.Client
	tracer trace.Tracer
	nodes  map[string]*node
}

// New returns a Loader reading from client.
func New(client registry.Client) *Loader {
	return &Loader{
		client: client,
		tracer: otel.Tracer(tracerName),
		nodes:  make(map[string]*node),
	}
}

// Load returns name and all of its transitive dependencies.
func (l *Loader) Load(ctx context.Context, name string) (*Set, error) {
	return l.LoadAll(ctx, []string{name})
}

// LoadAll returns the union of the closures of names. The result does not
// depend on the order of names.
func (l *Loader) LoadAll(ctx context.Context, names []string) (*Set, error) {
	ctx, span := l.tracer.Start(ctx, "loader.LoadAll",
		trace.WithAttributes(attribute.StringSlice("star.components", names)))
	defer span.End()

	r := &resolution{
		loader:   l,
		set:      NewSet(),
		visiting: make(map[string]bool),
	}
	for _, name := range names {
		if err := r.visit(ctx, name, ""); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int("star.resolved", r.set.Len()))
	return r.set, nil
}

// fetch returns the memoized node for name.
func (l *Loader) fetch(ctx context.Context, name string) (*node, error) {
	if n, ok := l.nodes[name]; ok {
		return n, nil
	}

	comp, err := l.client.Metadata(ctx, name)
	if err != nil {
		return nil, err
	}
	src, err := l.client.Source(ctx, name)
	if err != nil {
		return nil, err
	}

	n := &node{deps: comp.Dependencies, source: src}
	l.nodes[name] = n
	return n, nil
}

type resolution struct {
	loader   *Loader
	set      *Set
	visiting map[string]bool
	stack    []string
}

func (r *resolution) visit(ctx context.Context, name, parent string) error {
	if r.set.Has(name) {
		return nil
	}
	if r.visiting[name] {
		return r.cycle(name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := r.loader.fetch(ctx, name)
	if err != nil {
		if parent != "" && errors.Is(err, errors.ErrNotFound) {
			return errors.New("E243").
				WithDetailf("Component '%s' (required by '%s') not found in registry", name, parent).
				Wrap(err)
		}
		return err
	}

	r.visiting[name] = true
	r.stack = append(r.stack, name)
	for _, dep := range n.deps {
		if err := r.visit(ctx, dep, name); err != nil {
			return err
		}
	}
	r.stack = r.stack[:len(r.stack)-1]
	delete(r.visiting, name)

	r.set.add(name, n.source)
	return nil
}

func (r *resolution) cycle(name string) error {
	start := 0
	for i, n := range r.stack {
		if n == name {
			start = i
			break
		}
	}
	path := append(append([]string{}, r.stack[start:]...), name)
	return errors.New("E245").
		WithDetail("Dependency cycle: " + strings.Join(path, " -> ")).
		WithSuggestion("Fix the dependencies of these components in the registry manifest")
}
