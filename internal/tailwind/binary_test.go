package tailwind

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func requireAsset(t *testing.T) string {
	t.Helper()
	name, ok := assetName(runtime.GOARCH)
	if !ok {
		t.Skipf("no Tailwind release for %s", PlatformName())
	}
	return name
}

// isolate keeps the host environment from satisfying the lookup.
func isolate(t *testing.T, b *Binary) *Binary {
	t.Helper()
	t.Setenv(EnvBinary, "")
	b.SkipPath = true
	return b
}

func writeFakeBinary(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("bin"), 0755); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

func TestAssetName(t *testing.T) {
	name, ok := assetName(runtime.GOARCH)
	if !ok {
		t.Skipf("no asset for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	if !strings.HasPrefix(name, "tailwindcss-") {
		t.Errorf("expected asset name to start with 'tailwindcss-', got %s", name)
	}

	switch runtime.GOOS {
	case "darwin":
		if !strings.Contains(name, "macos") {
			t.Errorf("expected a macos asset, got %s", name)
		}
	case "linux":
		if !strings.Contains(name, "linux") {
			t.Errorf("expected a linux asset, got %s", name)
		}
	case "windows":
		if !strings.HasSuffix(name, ".exe") {
			t.Errorf("expected an .exe asset, got %s", name)
		}
	}

	if _, ok := assetName("mips"); ok {
		t.Error("expected no asset for mips")
	}
}

func TestPlatformName(t *testing.T) {
	if got := osName("darwin") + " " + archName("arm64"); got != "macOS ARM64" {
		t.Errorf("got %q", got)
	}
	if got := osName("linux") + " " + archName("amd64"); got != "Linux x64" {
		t.Errorf("got %q", got)
	}
	if got := osName("plan9") + " " + archName("386"); got != "plan9 386" {
		t.Errorf("got %q", got)
	}
	if PlatformName() == "" {
		t.Error("PlatformName() returned empty string")
	}
}

func TestNewBinary(t *testing.T) {
	if b := NewBinary(""); b.Version != Version {
		t.Errorf("expected version %s, got %s", Version, b.Version)
	}
	b := NewBinary("v4.0.9")
	if b.Version != "v4.0.9" {
		t.Errorf("expected version v4.0.9, got %s", b.Version)
	}
	if !strings.HasSuffix(filepath.ToSlash(b.BinDir), DefaultBinDir) {
		t.Errorf("BinDir = %q, want suffix %q", b.BinDir, DefaultBinDir)
	}
}

func TestCachePathIncludesVersion(t *testing.T) {
	requireAsset(t)
	b := &Binary{Version: "vTEST", BinDir: t.TempDir()}
	got := b.cachePath()
	if !strings.Contains(got, string(filepath.Separator)+"vTEST"+string(filepath.Separator)) {
		t.Fatalf("cachePath = %q, expected version dir vTEST", got)
	}
}

func TestDownloadURL(t *testing.T) {
	name := requireAsset(t)

	b := &Binary{Version: "vTEST"}
	url, err := b.downloadURL()
	if err != nil {
		t.Fatal(err)
	}
	if url != GitHubReleaseURL+"/vTEST/"+name {
		t.Errorf("downloadURL = %q", url)
	}

	b.DownloadBaseURL = "https://example.com/releases/download/"
	url, _ = b.downloadURL()
	if strings.Contains(url, "download//vTEST") {
		t.Errorf("downloadURL has double slash: %q", url)
	}
}

func TestEnsureInstalledDownloads(t *testing.T) {
	requireAsset(t)

	var requests atomic.Int64
	want := []byte("fake-binary-bytes")
	b := isolate(t, &Binary{
		Version:         "vTEST",
		BinDir:          t.TempDir(),
		DownloadBaseURL: "https://example.test/releases/download",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			requests.Add(1)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(want)),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		})},
	})

	var progress []string
	path, err := b.EnsureInstalled(context.Background(), func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}
	if path != b.cachePath() {
		t.Fatalf("path = %q, want %q", path, b.cachePath())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("installed bytes = %q", got)
	}
	if len(progress) < 2 {
		t.Fatalf("expected progress messages, got %v", progress)
	}
	if !b.IsInstalled() {
		t.Fatal("expected IsInstalled() after download")
	}

	// A fresh Binary finds the cached copy.
	again := isolate(t, &Binary{Version: "vTEST", BinDir: b.BinDir, HTTPClient: b.HTTPClient})
	if _, err := again.EnsureInstalled(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if requests.Load() != 1 {
		t.Fatalf("requests = %d, want 1", requests.Load())
	}
}

func TestEnsureInstalledNonOKStatus(t *testing.T) {
	requireAsset(t)

	b := isolate(t, &Binary{
		Version: "vTEST",
		BinDir:  t.TempDir(),
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(strings.NewReader("nope")),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		})},
	})

	_, err := b.EnsureInstalled(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "download failed with status 404") {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.IsInstalled() {
		t.Fatal("failed download left a binary behind")
	}
}

func TestEnsureInstalledPrefersEnv(t *testing.T) {
	envBin := filepath.Join(t.TempDir(), "tw-env")
	explicit := filepath.Join(t.TempDir(), "tw-explicit")
	writeFakeBinary(t, envBin)
	writeFakeBinary(t, explicit)

	t.Setenv(EnvBinary, envBin)
	b := &Binary{Version: "vTEST", BinDir: t.TempDir(), Explicit: explicit, SkipPath: true}
	path, err := b.EnsureInstalled(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != envBin {
		t.Fatalf("path = %q, want %q", path, envBin)
	}
}

func TestEnsureInstalledExplicit(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "tw")
	writeFakeBinary(t, explicit)

	b := isolate(t, &Binary{Version: "vTEST", BinDir: t.TempDir(), Explicit: explicit})
	path, err := b.EnsureInstalled(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != explicit {
		t.Fatalf("path = %q, want %q", path, explicit)
	}

	missing := isolate(t, &Binary{Version: "vTEST", BinDir: t.TempDir(), Explicit: explicit + "-gone"})
	if _, err := missing.EnsureInstalled(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing explicit binary")
	}
}
