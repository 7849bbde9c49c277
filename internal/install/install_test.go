package install

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/exec"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
)

type fakePrompt struct {
	confirm  bool
	choice   int
	confirms []string
	selects  []string
}

func (p *fakePrompt) Confirm(message string, defaultYes bool) bool {
	p.confirms = append(p.confirms, message)
	return p.confirm
}

func (p *fakePrompt) Select(message string, options []string, def int) int {
	p.selects = append(p.selects, message)
	return p.choice
}

// untouchable fails the test if the registry is consulted.
type untouchable struct {
	registry.Client
	t *testing.T
}

func (u untouchable) Metadata(ctx context.Context, name string) (*registry.Component, error) {
	u.t.Fatalf("registry consulted for %q", name)
	return nil, nil
}

func testRegistry() *registry.Memory {
	return registry.NewMemory().
		Add(registry.Component{Name: "utils"}, "# utils\n").
		Add(registry.Component{Name: "button", Dependencies: []string{"utils"}}, "# button\n").
		Add(registry.Component{Name: "dialog", Dependencies: []string{"button", "utils"}}, "# dialog\n").
		Add(registry.Component{Name: "alert_dialog", Dependencies: []string{"button"}}, "# alert dialog\n").
		Add(registry.Component{
			Name:         "code_block",
			Dependencies: []string{"utils"},
			Packages:     []string{"starlighter"},
		}, "# code block\n").
		Add(registry.Component{
			Name:       "typography",
			Packages:   []string{"markdown", "bleach"},
			CSSImports: []string{`@plugin "@tailwindcss/typography";`},
		}, "# typography\n")
}

type harness struct {
	cfg    *config.Config
	exec   *exec.Fake
	prompt *fakePrompt
	out    *bytes.Buffer
	errOut *bytes.Buffer
	inst   *Installer
}

func newHarness(t *testing.T, client registry.Client) *harness {
	t.Helper()
	cfg := config.New(t.TempDir())
	h := &harness{
		cfg:    cfg,
		exec:   &exec.Fake{},
		prompt: &fakePrompt{},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	h.inst = New(cfg, client, h.exec, h.prompt, output.NewPrinter(h.out, h.errOut))
	return h
}

func (h *harness) writeComponent(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(h.cfg.ComponentDirPath(), 0755))
	require.NoError(t, os.WriteFile(h.cfg.ComponentPath(name), []byte(content), 0644))
}

func (h *harness) readComponent(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(h.cfg.ComponentPath(name))
	require.NoError(t, err)
	return string(data)
}

func (h *harness) writeInputCSS(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(h.cfg.CSSDir(), 0755))
	require.NoError(t, os.WriteFile(h.cfg.InputCSSPath(), []byte("@import \"tailwindcss\";\n\n@theme {\n}\n"), 0644))
}

func TestValidateNames(t *testing.T) {
	assert.NoError(t, ValidateNames([]string{"button", "alert-dialog", "x_1"}))

	err := ValidateNames([]string{"button", "Bad", "1up", "ok", "has space"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidName))
	assert.Contains(t, err.Error(), "Bad, 1up, has space")
}

func TestRunInvalidNamesTouchesNothing(t *testing.T) {
	h := newHarness(t, untouchable{Client: testRegistry(), t: t})

	_, err := h.inst.Run(context.Background(), Options{Components: []string{"button", "Nope!"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidName))
	assert.Empty(t, h.exec.Calls())
	assert.NoDirExists(t, h.cfg.ComponentDirPath())
}

func TestRunFreshInstall(t *testing.T) {
	h := newHarness(t, testRegistry())

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"dialog"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"utils", "button", "dialog"}, res.Written)
	assert.Equal(t, "utils", res.Written[0])
	assert.Empty(t, res.Skipped)
	assert.Empty(t, h.prompt.confirms)

	assert.Equal(t, "# dialog\n", h.readComponent(t, "dialog"))
	assert.Equal(t, "# button\n", h.readComponent(t, "button"))
	assert.Equal(t, "# utils\n", h.readComponent(t, "utils"))
	assert.FileExists(t, filepath.Join(h.cfg.ComponentDirPath(), "__init__.py"))

	assert.Contains(t, h.out.String(), "Installed components:")
	assert.Contains(t, h.out.String(), "from components.ui import Dialog")
}

func TestRunNormalizesHyphens(t *testing.T) {
	h := newHarness(t, testRegistry())

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"alert-dialog", "alert_dialog"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alert_dialog"}, res.Requested)
	assert.FileExists(t, h.cfg.ComponentPath("alert_dialog"))
	assert.Contains(t, h.out.String(), "import AlertDialog")
}

func TestRunKeepsExistingDependencies(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeComponent(t, "utils", "# my utils\n")

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"button"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"button"}, res.Written)
	assert.Equal(t, []string{"utils"}, res.Skipped)
	assert.Empty(t, h.prompt.confirms)
	assert.Equal(t, "# my utils\n", h.readComponent(t, "utils"))
}

func TestRunConflictDeclined(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeComponent(t, "dialog", "# my dialog\n")
	h.prompt.confirm = false

	_, err := h.inst.Run(context.Background(), Options{Components: []string{"dialog"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflictDeclined))

	assert.Len(t, h.prompt.confirms, 1)
	assert.Equal(t, "# my dialog\n", h.readComponent(t, "dialog"))
	assert.NoFileExists(t, h.cfg.ComponentPath("button"))
	assert.Contains(t, h.errOut.String(), "already exist")
}

func TestRunConflictAccepted(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeComponent(t, "dialog", "# my dialog\n")
	h.writeComponent(t, "utils", "# my utils\n")
	h.prompt.confirm = true

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"dialog"}})
	require.NoError(t, err)

	assert.Len(t, h.prompt.confirms, 1)
	assert.Equal(t, "# dialog\n", h.readComponent(t, "dialog"))
	assert.Equal(t, "# my utils\n", h.readComponent(t, "utils"))
	assert.Equal(t, []string{"utils"}, res.Skipped)
}

func TestRunForceOverwritesEverything(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeComponent(t, "dialog", "# my dialog\n")
	h.writeComponent(t, "utils", "# my utils\n")

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"dialog"}, Force: true})
	require.NoError(t, err)

	assert.Empty(t, h.prompt.confirms)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "# dialog\n", h.readComponent(t, "dialog"))
	assert.Equal(t, "# utils\n", h.readComponent(t, "utils"))
}

func TestRunUnknownComponent(t *testing.T) {
	h := newHarness(t, testRegistry())

	_, err := h.inst.Run(context.Background(), Options{Components: []string{"button", "ghost"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.NoDirExists(t, h.cfg.ComponentDirPath())
}

func TestRunInstallsPackagesSorted(t *testing.T) {
	h := newHarness(t, testRegistry())

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"typography"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"bleach", "markdown"}, res.Packages)
	assert.Equal(t, []string{"uv add bleach", "uv add markdown"}, h.exec.Lines())
	for _, c := range h.exec.Calls() {
		assert.Equal(t, h.cfg.Root(), c.Dir)
	}
}

func TestRunPackageFailureIsWarning(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.exec.Handler = func(ctx context.Context, cmd exec.Command) (exec.Result, error) {
		if cmd.Args[1] == "bleach" {
			return exec.Result{ExitCode: 1, Stderr: "no such package\n"}, nil
		}
		return exec.Result{}, nil
	}

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"typography"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"bleach"}, res.FailedPackages)
	assert.Contains(t, h.errOut.String(), "Failed to install bleach: no such package")
	assert.FileExists(t, h.cfg.ComponentPath("typography"))
}

func TestRunSkippedDependencyPackagesNotInstalled(t *testing.T) {
	client := testRegistry().
		Add(registry.Component{Name: "viewer", Dependencies: []string{"code_block"}}, "# viewer\n")
	h := newHarness(t, client)
	h.writeComponent(t, "code_block", "# mine\n")
	h.writeComponent(t, "utils", "# mine\n")

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"viewer"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"viewer"}, res.Written)
	assert.Empty(t, res.Packages)
	assert.Empty(t, h.exec.Calls())
	assert.Empty(t, h.prompt.selects)
	assert.NoFileExists(t, filepath.Join(h.cfg.CSSDir(), HighlightFile))
}

func TestRunAddsCSSImportsOnce(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeInputCSS(t)

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"typography"}})
	require.NoError(t, err)
	assert.Equal(t, []string{`@plugin "@tailwindcss/typography";`}, res.CSSImports)

	res, err = h.inst.Run(context.Background(), Options{Components: []string{"typography"}, Force: true})
	require.NoError(t, err)
	assert.Empty(t, res.CSSImports)

	data, err := os.ReadFile(h.cfg.InputCSSPath())
	require.NoError(t, err)
	css := string(data)
	assert.Equal(t, 1, strings.Count(css, "@tailwindcss/typography"))
	assert.True(t, strings.HasPrefix(css, "@import \"tailwindcss\";\n@plugin \"@tailwindcss/typography\";\n"))
}

func TestRunWithoutInputCSS(t *testing.T) {
	h := newHarness(t, testRegistry())

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"typography"}})
	require.NoError(t, err)
	assert.Empty(t, res.CSSImports)
	assert.NoFileExists(t, h.cfg.InputCSSPath())
}

func TestRunCodeBlockWithTheme(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeInputCSS(t)

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"code_block"}, Theme: "dracula"})
	require.NoError(t, err)
	assert.Equal(t, []string{"uv add starlighter"}, h.exec.Lines())
	assert.Equal(t, []string{"starlighter"}, res.Packages)
	assert.Empty(t, h.prompt.selects)

	data, err := os.ReadFile(filepath.Join(h.cfg.CSSDir(), HighlightFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), ":root {")
	assert.NotContains(t, string(data), ".dark {")

	input, err := os.ReadFile(h.cfg.InputCSSPath())
	require.NoError(t, err)
	assert.Contains(t, string(input), HighlightImport)
}

func TestRunCodeBlockPromptsForTheme(t *testing.T) {
	h := newHarness(t, testRegistry())
	h.writeInputCSS(t)
	h.prompt.choice = 0

	_, err := h.inst.Run(context.Background(), Options{Components: []string{"code_block"}})
	require.NoError(t, err)
	assert.Len(t, h.prompt.selects, 1)

	data, err := os.ReadFile(filepath.Join(h.cfg.CSSDir(), HighlightFile))
	require.NoError(t, err)
	css := string(data)
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, ".dark {")
	assert.Contains(t, css, "[data-theme='dark'] {")
}

func TestRunUnknownThemeIsWarning(t *testing.T) {
	h := newHarness(t, testRegistry())

	_, err := h.inst.Run(context.Background(), Options{Components: []string{"code_block"}, Theme: "solarized"})
	require.NoError(t, err)
	assert.Contains(t, h.errOut.String(), "Code highlighting setup failed")
	assert.FileExists(t, h.cfg.ComponentPath("code_block"))
}

func TestHighlightCSS(t *testing.T) {
	pair, err := HighlightCSS("github-light", "github-dark")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pair, registry.HighlightCSS()))
	assert.True(t, strings.HasSuffix(pair, "}\n"))

	_, err = HighlightCSS("", "nope")
	assert.Error(t, err)
}

func TestRunEmbeddedCatalog(t *testing.T) {
	h := newHarness(t, registry.Embedded())

	res, err := h.inst.Run(context.Background(), Options{Components: []string{"theme-toggle"}})
	require.NoError(t, err)
	assert.Contains(t, res.Written, "theme_toggle")
	assert.Contains(t, res.Written, "button")
	assert.Contains(t, res.Written, "utils")
}
