package registry

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/starui-dev/star/internal/errors"
)

// Open returns a Client for a registry location:
//
//	""                   embedded catalog
//	http(s)://host/path  HTTP registry
//	s3://bucket/prefix   S3 registry
//	file:///dir or /dir  catalog directory on disk
func Open(ctx context.Context, location string) (Client, error) {
	if location == "" {
		return Embedded(), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, errors.New("E244").
			WithDetailf("Invalid registry location %q", location).
			Wrap(err)
	}

	switch u.Scheme {
	case "http", "https":
		return NewHTTP(location, nil), nil
	case "s3":
		if u.Host == "" {
			return nil, errors.New("E244").WithDetailf("Missing bucket in %q", location)
		}
		api, err := NewS3Client(ctx)
		if err != nil {
			return nil, errors.New("E244").
				WithDetailf("Loading AWS configuration: %v", err).
				Wrap(err)
		}
		return NewS3(api, u.Host, strings.TrimPrefix(u.Path, "/")), nil
	case "file":
		return openDir(u.Path)
	case "":
		return openDir(location)
	}

	return nil, errors.New("E244").
		WithDetailf("Unsupported registry scheme %q", u.Scheme).
		WithSuggestion("Use an http(s)://, s3:// or file:// location")
}

func openDir(dir string) (Client, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New("E244").WithDetailf("Registry directory %q does not exist", dir)
	}
	return NewFS(os.DirFS(dir), dir), nil
}
