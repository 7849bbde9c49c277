package registry

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed catalog
var embeddedCatalog embed.FS

// EmbeddedFS returns the catalog compiled into the binary, rooted at the
// directory holding manifest.json.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		panic(err)
	}
	return sub
}

// Embedded returns a Client over the catalog compiled into the binary.
func Embedded() *Catalog {
	return NewFS(EmbeddedFS(), "embedded catalog")
}

// NewFS returns a Client over a catalog stored in fsys.
func NewFS(fsys fs.FS, location string) *Catalog {
	return NewCatalog(fsFetcher{fsys: fsys}, location)
}

type fsFetcher struct {
	fsys fs.FS
}

func (f fsFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.fsys, path.Clean(name))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrObjectNotFound)
		}
		return nil, err
	}
	return data, nil
}
