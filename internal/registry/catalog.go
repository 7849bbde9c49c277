package registry

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/starui-dev/star/internal/errors"
)

// ErrObjectNotFound is returned by a Fetcher when the object does not exist.
var ErrObjectNotFound = stderrors.New("object not found")

// Fetcher reads raw catalog objects by slash-separated path, for example
// "manifest.json" or "components/button.py".
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Catalog implements Client on top of a Fetcher. The manifest is fetched
// once per Catalog and reused for every lookup.
type Catalog struct {
	fetcher  Fetcher
	location string

	mu       sync.Mutex
	manifest *Manifest
}

// NewCatalog returns a Catalog reading from f. location is shown in error
// messages.
func NewCatalog(f Fetcher, location string) *Catalog {
	return &Catalog{fetcher: f, location: location}
}

// Location returns where the catalog is read from.
func (c *Catalog) Location() string {
	return c.location
}

// Manifest fetches and parses the manifest on first use.
func (c *Catalog) Manifest(ctx context.Context) (*Manifest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.manifest != nil {
		return c.manifest, nil
	}

	data, err := c.fetcher.Fetch(ctx, "manifest.json")
	if err != nil {
		return nil, errors.New("E244").
			WithDetail(fmt.Sprintf("Could not read manifest from %s: %v", c.location, err)).
			WithSuggestion("Check your network connection or the --registry value").
			Wrap(err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	c.manifest = m
	return m, nil
}

// List returns all component names in sorted order.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	return m.Names(), nil
}

// Metadata returns a copy of the named component's metadata.
func (c *Catalog) Metadata(ctx context.Context, name string) (*Component, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	comp, ok := m.Components[name]
	if !ok {
		return nil, notFound(name)
	}
	return &comp, nil
}

// Source returns the source text of the named component.
func (c *Catalog) Source(ctx context.Context, name string) (string, error) {
	if _, err := c.Metadata(ctx, name); err != nil {
		return "", err
	}

	data, err := c.fetcher.Fetch(ctx, sourcePath(name))
	if err != nil {
		if stderrors.Is(err, ErrObjectNotFound) {
			return "", errors.New("E243").
				WithDetailf("Component '%s' is listed in the manifest but its source is missing", name).
				Wrap(err)
		}
		return "", errors.New("E244").
			WithDetail(fmt.Sprintf("Could not download %s from %s: %v", sourcePath(name), c.location, err)).
			Wrap(err)
	}
	return string(data), nil
}

func sourcePath(name string) string {
	return "components/" + name + ".py"
}

func notFound(name string) *errors.StarError {
	return errors.New("E243").
		WithDetailf("Component '%s' not found in registry", name).
		WithSuggestion("Run 'star list' to see available components")
}
