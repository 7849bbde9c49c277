package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 30 * time.Second

// NewHTTP returns a Client reading from a registry served over HTTP. A nil
// client uses one with DefaultTimeout.
func NewHTTP(baseURL string, client *http.Client) *Catalog {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return NewCatalog(&httpFetcher{
		base:   strings.TrimRight(baseURL, "/"),
		client: client,
	}, baseURL)
}

type httpFetcher struct {
	base   string
	client *http.Client
}

func (f *httpFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := f.base + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrObjectNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: registry returned status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
