// Package install implements the add workflow: validate requested names,
// resolve their dependency closure, reconcile it with the files already in
// the project, then install packages, wire stylesheet imports and write
// component sources.
package install

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starui-dev/star/internal/config"
	starerrors "github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/exec"
	"github.com/starui-dev/star/internal/loader"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
	"github.com/starui-dev/star/internal/textedit"
)

// CodeBlock is the component that needs syntax highlighting styles.
const CodeBlock = "code_block"

// Prompter asks the user questions.
type Prompter interface {
	Confirm(message string, defaultYes bool) bool
	Select(message string, options []string, def int) int
}

// Options controls one add run.
type Options struct {
	// Components are the requested names as typed by the user.
	Components []string

	// Force overwrites existing files without asking.
	Force bool

	// Theme selects the code highlighting theme without prompting.
	Theme string

	// Verbose prints resolution details.
	Verbose bool
}

// Result reports what an add run did.
type Result struct {
	// Requested are the normalized requested names.
	Requested []string

	// Written are the components whose sources were written, dependencies
	// first.
	Written []string

	// Skipped are dependencies left alone because they already exist.
	Skipped []string

	// Packages are the native packages that were attempted, sorted.
	Packages []string

	// FailedPackages are the packages whose installation failed.
	FailedPackages []string

	// CSSImports are the directives newly added to the input stylesheet.
	CSSImports []string
}

// Installer runs the add workflow against one project.
type Installer struct {
	Config  *config.Config
	Client  registry.Client
	Exec    exec.Executor
	Prompt  Prompter
	Printer *output.Printer
}

// New returns an Installer.
func New(cfg *config.Config, client registry.Client, executor exec.Executor, prompt Prompter, printer *output.Printer) *Installer {
	return &Installer{
		Config:  cfg,
		Client:  client,
		Exec:    executor,
		Prompt:  prompt,
		Printer: printer,
	}
}

// ValidateNames returns an E240 error listing every malformed name.
func ValidateNames(names []string) error {
	var invalid []string
	for _, name := range names {
		if !registry.ValidRequestName(name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return starerrors.New("E240").
		WithDetail(strings.Join(invalid, ", ")).
		WithSuggestion("Names start with a lowercase letter and contain only a-z, 0-9, '_' and '-'")
}

// Run installs opts.Components. Declining the overwrite prompt returns an
// error matching errors.ErrConflictDeclined and leaves every file untouched.
func (i *Installer) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidateNames(opts.Components); err != nil {
		return nil, err
	}

	res := &Result{Requested: normalize(opts.Components)}
	requested := make(map[string]bool, len(res.Requested))
	for _, name := range res.Requested {
		requested[name] = true
	}

	if opts.Verbose {
		for _, name := range opts.Components {
			i.Printer.Info("Resolving %s -> %s...", name, registry.NormalizeName(name))
		}
	}

	resolved, err := loader.New(i.Client).LoadAll(ctx, res.Requested)
	if err != nil {
		return nil, err
	}

	var conflicts []string
	for _, name := range resolved.Names() {
		if requested[name] && i.exists(name) {
			conflicts = append(conflicts, name)
		}
	}

	if len(conflicts) > 0 && !opts.Force {
		i.Printer.Warn("The following requested components already exist:")
		for _, name := range conflicts {
			i.Printer.Info("• %s", i.Config.ComponentPath(name))
		}
		if i.Prompt == nil || !i.Prompt.Confirm("Overwrite?", false) {
			return nil, starerrors.New("E246").
				WithDetail("Existing components were left unchanged: " + strings.Join(conflicts, ", "))
		}
	}

	writes := resolved
	if !opts.Force {
		writes = resolved.Filter(func(name string) bool {
			if requested[name] || !i.exists(name) {
				return true
			}
			res.Skipped = append(res.Skipped, name)
			return false
		})
	}

	packages, imports, err := i.collect(ctx, writes.Names())
	if err != nil {
		return nil, err
	}

	res.Packages = packages
	res.FailedPackages = i.installPackages(ctx, packages)

	if writes.Has(CodeBlock) {
		if err := i.setupHighlighting(opts.Theme); err != nil {
			i.Printer.Warn("Code highlighting setup failed: %v", err)
		}
	}

	if len(imports) > 0 {
		inserted, err := textedit.InsertFileAfterAnchor(i.Config.InputCSSPath(), textedit.TailwindAnchor, imports)
		if err != nil {
			return nil, err
		}
		res.CSSImports = inserted
		for _, imp := range inserted {
			i.Printer.Info("Added %s to %s", imp, config.InputCSSName)
		}
	}

	err = output.RunWithSpinner(ctx, "Installing components...", func() error {
		return i.writeSources(writes)
	})
	if err != nil {
		return nil, err
	}
	res.Written = writes.Names()

	i.report(res, opts)
	return res, nil
}

func (i *Installer) exists(name string) bool {
	info, err := os.Stat(i.Config.ComponentPath(name))
	return err == nil && !info.IsDir()
}

// collect gathers the packages (sorted, deduplicated) and stylesheet
// directives (first-seen order) declared by names.
func (i *Installer) collect(ctx context.Context, names []string) ([]string, []string, error) {
	pkgSet := make(map[string]bool)
	var imports []string
	seen := make(map[string]bool)

	for _, name := range names {
		meta, err := i.Client.Metadata(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		for _, pkg := range meta.Packages {
			pkgSet[pkg] = true
		}
		for _, imp := range meta.CSSImports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}

	packages := make([]string, 0, len(pkgSet))
	for pkg := range pkgSet {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages, imports, nil
}

// installPackages runs `uv add` for each package in turn. Failures are
// reported and returned, never fatal.
func (i *Installer) installPackages(ctx context.Context, packages []string) []string {
	var failed []string
	for _, pkg := range packages {
		i.Printer.Info("Installing package: %s", pkg)
		output.Debug("running package manager", "package", pkg, "dir", i.Config.Root())

		res, err := i.Exec.Run(ctx, exec.Command{
			Name: "uv",
			Args: []string{"add", pkg},
			Dir:  i.Config.Root(),
		})
		var reason string
		switch {
		case err != nil:
			reason = err.Error()
		case !res.Success():
			reason = strings.TrimSpace(res.Stderr)
		default:
			i.Printer.Success("Installed: %s", pkg)
			continue
		}
		i.Printer.Warn("Failed to install %s: %s", pkg, reason)
		output.Debug("package install failed", "err", starerrors.New("E247").WithDetail(pkg).Wrap(err))
		failed = append(failed, pkg)
	}
	return failed
}

func (i *Installer) writeSources(set *loader.Set) error {
	dir := i.Config.ComponentDirPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := touch(filepath.Join(dir, "__init__.py")); err != nil {
		return err
	}
	for _, name := range set.Names() {
		src, _ := set.Source(name)
		if err := os.WriteFile(i.Config.ComponentPath(name), []byte(src), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) report(res *Result, opts Options) {
	if len(res.Written) > 0 {
		i.Printer.Success("Installed components: %s", strings.Join(res.Written, ", "))
	} else {
		i.Printer.Info("All components already installed (dependencies unchanged)")
	}
	if opts.Verbose {
		if len(res.Skipped) > 0 {
			i.Printer.Info("Kept existing: %s", strings.Join(res.Skipped, ", "))
		}
		i.Printer.Info("Location: %s", i.Config.ComponentDirPath())
	}

	i.Printer.Println("")
	i.Printer.Println("Next steps:")
	i.Printer.Info("• Import: from %s import %s", modulePath(i.Config.ComponentDir), registry.PascalName(res.firstName()))
}

func (r *Result) firstName() string {
	for _, name := range r.Requested {
		for _, w := range r.Written {
			if w == name {
				return name
			}
		}
	}
	if len(r.Requested) > 0 {
		return r.Requested[0]
	}
	return ""
}

func normalize(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := registry.NormalizeName(name)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// modulePath converts a component directory into a Python import path.
func modulePath(dir string) string {
	dir = strings.Trim(filepath.ToSlash(filepath.Clean(dir)), "/")
	return strings.ReplaceAll(dir, "/", ".")
}

func touch(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, nil, 0644)
}
