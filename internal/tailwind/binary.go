package tailwind

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/starui-dev/star/internal/exec"
)

const (
	// Version is the Tailwind CSS release used when a project pins none.
	// v4.0.0-v4.0.5 exit immediately under --watch.
	Version = "v4.1.18"

	// GitHubReleaseURL is the base URL for downloading Tailwind binaries.
	GitHubReleaseURL = "https://github.com/tailwindlabs/tailwindcss/releases/download"

	// DefaultBinDir is the binary cache directory, relative to the home
	// directory.
	DefaultBinDir = ".starui/bin"

	// EnvBinary names an explicit compiler path.
	EnvBinary = "STARUI_TAILWIND_BIN"

	// CommandName is the compiler looked up on PATH.
	CommandName = "tailwindcss"

	downloadTimeout = 5 * time.Minute
)

// Binary locates the Tailwind CSS standalone compiler.
type Binary struct {
	// Version is the release to download when nothing else is found.
	Version string

	// BinDir is the cache directory holding one subdirectory per version.
	BinDir string

	// Explicit is a configured compiler path. It wins over every other
	// source except EnvBinary.
	Explicit string

	// DownloadBaseURL overrides GitHubReleaseURL.
	DownloadBaseURL string

	// HTTPClient is used for downloads. If nil, a default client is used.
	HTTPClient *http.Client

	// SkipPath disables the PATH lookup.
	SkipPath bool

	path string
	mu   sync.Mutex
}

// NewBinary returns a Binary for version, or Version when empty.
func NewBinary(version string) *Binary {
	if version == "" {
		version = Version
	}
	return &Binary{
		Version:         version,
		BinDir:          defaultBinDir(),
		DownloadBaseURL: GitHubReleaseURL,
	}
}

func defaultBinDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", DefaultBinDir)
	}
	return filepath.Join(home, DefaultBinDir)
}

// EnsureInstalled returns the compiler path. It checks, in order, the
// STARUI_TAILWIND_BIN environment variable, Explicit, tailwindcss on PATH
// and the versioned cache, then downloads into the cache.
func (b *Binary) EnsureInstalled(ctx context.Context, progress func(msg string)) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path != "" {
		return b.path, nil
	}

	path, err := b.locate()
	if err != nil {
		return "", err
	}
	if path == "" {
		if err := b.download(ctx, progress); err != nil {
			return "", err
		}
		path = b.cachePath()
	}

	b.path = path
	return path, nil
}

// locate returns the first compiler found without downloading, or "" when
// the download is needed.
func (b *Binary) locate() (string, error) {
	explicit := os.Getenv(EnvBinary)
	if explicit == "" {
		explicit = b.Explicit
	}
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("tailwind binary not found at %s", explicit)
		}
		return explicit, nil
	}

	if !b.SkipPath {
		if p, err := exec.LookPath(CommandName); err == nil {
			return p, nil
		}
	}

	if p := b.cachePath(); p != "" && fileExists(p) {
		return p, nil
	}
	return "", nil
}

// IsInstalled reports whether the versioned cache holds the binary.
func (b *Binary) IsInstalled() bool {
	p := b.cachePath()
	return p != "" && fileExists(p)
}

func (b *Binary) cachePath() string {
	name, ok := assetName(runtime.GOARCH)
	if !ok {
		return ""
	}
	return filepath.Join(b.BinDir, b.Version, name)
}

func (b *Binary) downloadURL() (string, error) {
	name, ok := assetName(runtime.GOARCH)
	if !ok {
		return "", fmt.Errorf("no Tailwind CSS binary is published for %s; set %s", PlatformName(), EnvBinary)
	}
	base := b.DownloadBaseURL
	if base == "" {
		base = GitHubReleaseURL
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), b.Version, name), nil
}

func (b *Binary) download(ctx context.Context, progress func(msg string)) error {
	url, err := b.downloadURL()
	if err != nil {
		return err
	}
	target := b.cachePath()

	if progress != nil {
		progress(fmt.Sprintf("Downloading Tailwind CSS %s for %s...", b.Version, PlatformName()))
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	client := b.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d (URL: %s)", resp.StatusCode, url)
	}

	// Write beside the target, then rename.
	tmp := target + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	written, err := io.Copy(f, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if progress != nil {
		progress(fmt.Sprintf("Downloaded %.1f MB", float64(written)/1024/1024))
	}

	if err := os.Chmod(tmp, 0755); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to make executable: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to install binary: %w", err)
	}

	if progress != nil {
		progress(fmt.Sprintf("Installed to %s", target))
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
