package tailwind

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/exec"
	"github.com/starui-dev/star/internal/output"
)

// Mode selects development or production output.
type Mode int

const (
	Development Mode = iota
	Production
)

func (m Mode) String() string {
	if m == Production {
		return "production"
	}
	return "development"
}

// BuildOptions controls one Build call.
type BuildOptions struct {
	Mode Mode

	// Watch keeps the compiler running until ctx is cancelled.
	Watch bool

	// ScanContent adds the component directory as a class source.
	ScanContent bool

	// OnRebuild receives one result per rebuild in watch mode.
	OnRebuild func(BuildResult)
}

// BuildResult describes one compilation.
type BuildResult struct {
	Success    bool
	OutputPath string
	Duration   time.Duration
	Size       int64
	Error      string
}

// Builder compiles the stylesheet of one project.
type Builder struct {
	Config *config.Config
	Binary *Binary
	Exec   exec.Executor

	// Stderr, when set, receives compiler diagnostics as they are printed.
	Stderr io.Writer

	// Progress receives binary download messages.
	Progress func(msg string)
}

// NewBuilder returns a Builder using the project's pinned Tailwind release.
func NewBuilder(cfg *config.Config, executor exec.Executor) *Builder {
	bin := NewBinary(cfg.Tailwind.Version)
	bin.Explicit = cfg.Tailwind.Binary
	return &Builder{
		Config: cfg,
		Binary: bin,
		Exec:   executor,
	}
}

// Build compiles the project stylesheet. Failures are reported through
// BuildResult, never as an error. In watch mode Build returns when ctx is
// cancelled or the compiler exits.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) BuildResult {
	start := time.Now()
	out := b.Config.CSSOutputPath()

	fail := func(format string, args ...any) BuildResult {
		return BuildResult{
			OutputPath: out,
			Duration:   time.Since(start),
			Error:      fmt.Sprintf(format, args...),
		}
	}

	input := b.Config.InputCSSPath()
	if !fileExists(input) {
		return fail("input stylesheet not found: %s", input)
	}

	bin, err := b.Binary.EnsureInstalled(ctx, b.Progress)
	if err != nil {
		return fail("%v", err)
	}

	if opts.ScanContent {
		scanned, cleanup, err := b.scanInput(input)
		if err != nil {
			return fail("prepare input: %v", err)
		}
		defer cleanup()
		input = scanned
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fail("create output directory: %v", err)
	}

	cmd := exec.Command{
		Name:   bin,
		Args:   b.args(input, out, opts),
		Dir:    b.Config.Root(),
		Stderr: b.Stderr,
	}
	output.Debug("running tailwind", "cmd", cmd.String(), "mode", opts.Mode)

	if opts.Watch {
		return b.watch(ctx, cmd, opts, start)
	}

	res, err := b.Exec.Run(ctx, cmd)
	if err != nil {
		return fail("%v", err)
	}
	if !res.Success() {
		return fail("%s", exitMessage(res))
	}
	return b.result(out, time.Since(start))
}

func (b *Builder) args(input, out string, opts BuildOptions) []string {
	args := []string{
		"-i", input,
		"-o", out,
		"--cwd", b.Config.Root(),
	}
	if opts.Mode == Production {
		args = append(args, "--minify")
	}
	if opts.Watch {
		args = append(args, "--watch=always")
	}
	return args
}

// result stats the compiled output.
func (b *Builder) result(out string, d time.Duration) BuildResult {
	info, err := os.Stat(out)
	if err != nil {
		return BuildResult{
			OutputPath: out,
			Duration:   d,
			Error:      fmt.Sprintf("no output produced at %s", out),
		}
	}
	return BuildResult{
		Success:    true,
		OutputPath: out,
		Duration:   d,
		Size:       info.Size(),
	}
}

// scanInput writes a temporary copy of input beside it with an @source
// directive for the component directory. Relative imports in input keep
// resolving from the same directory.
func (b *Builder) scanInput(input string) (string, func(), error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", nil, err
	}

	dir := filepath.Dir(input)
	rel, err := filepath.Rel(dir, b.Config.ComponentDirPath())
	if err != nil {
		return "", nil, err
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}

	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += fmt.Sprintf("@source %q;\n", rel)

	f, err := os.CreateTemp(dir, ".starui-input-*.css")
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(name)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", nil, err
	}
	return name, func() { os.Remove(name) }, nil
}

func exitMessage(res exec.Result) string {
	if msg := strings.TrimSpace(res.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("tailwindcss exited with status %d", res.ExitCode)
}

// FormatSize renders a byte count: "<n> B", "<n.n> KB" from 1024 bytes and
// "<n.n> MB" from one million bytes.
func FormatSize(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
