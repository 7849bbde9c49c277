package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/errors"
	"github.com/starui-dev/star/internal/loader"
	"github.com/starui-dev/star/internal/output"
	"github.com/starui-dev/star/internal/registry"
	"github.com/starui-dev/star/internal/textedit"
)

// GitignoreHeader opens the block appended to .gitignore.
const GitignoreHeader = "# StarUI generated files"

// DefaultComponents are installed by init, with their dependencies.
var DefaultComponents = []string{"utils", "theme_toggle"}

// Validate fails with E241 when the project already holds a StarUI setup: a
// starui.yaml, or a non-empty configured component directory, components/ui
// or ui. force skips the check.
func Validate(cfg *config.Config, force bool) error {
	if force {
		return nil
	}

	root := cfg.Root()
	if _, err := os.Stat(filepath.Join(root, config.ConfigFileName)); err == nil {
		return errors.New("E241").
			WithDetail(config.ConfigFileName + " already exists").
			WithSuggestion("Use --force to initialize anyway")
	}

	dirs := []string{cfg.ComponentDirPath()}
	for _, dir := range []string{config.DefaultComponentDir, config.LegacyComponentDir} {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if path != dirs[0] {
			dirs = append(dirs, path)
		}
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) > 0 {
			return errors.New("E241").
				WithDetail(relSlash(root, dir) + "/ already contains files").
				WithSuggestion("Use --force to initialize anyway")
		}
	}
	return nil
}

func relSlash(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

// SetupDirectories creates the component directory with its __init__.py,
// the compiled stylesheet directory and static/css.
func SetupDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.ComponentDirPath(),
		filepath.Dir(cfg.CSSOutputPath()),
		filepath.Join(cfg.Root(), "static", "css"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	_, err := textedit.WriteIfMissing(filepath.Join(cfg.ComponentDirPath(), "__init__.py"), nil)
	return err
}

// CreateCSSInput writes the Tailwind input stylesheet unless one exists.
func CreateCSSInput(cfg *config.Config) (bool, error) {
	return renderIfMissing(cfg, FileInputCSS, cfg.InputCSSPath())
}

// CreateApp writes a starter app.py unless one exists.
func CreateApp(cfg *config.Config) (bool, error) {
	return renderIfMissing(cfg, FileApp, filepath.Join(cfg.Root(), FileApp))
}

func renderIfMissing(cfg *config.Config, name, path string) (bool, error) {
	content, err := Render(name, NewData(cfg))
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	return textedit.WriteIfMissing(path, content)
}

// UpdateGitignore appends the generated-files block to .gitignore once.
func UpdateGitignore(cfg *config.Config) (bool, error) {
	body := []string{
		".starui/",
		filepath.ToSlash(filepath.Clean(cfg.CSSOutput)),
	}
	return textedit.AppendFileBlock(filepath.Join(cfg.Root(), ".gitignore"), GitignoreHeader, body)
}

// CreateConfigFile writes starui.yaml unless one exists.
func CreateConfigFile(cfg *config.Config) (bool, error) {
	if config.Exists(cfg.Root()) {
		return false, nil
	}
	if err := cfg.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// AddDefaultComponents writes DefaultComponents and their dependencies into
// the component directory. Existing files are replaced.
func AddDefaultComponents(ctx context.Context, cfg *config.Config, client registry.Client) ([]string, error) {
	set, err := loader.New(client).LoadAll(ctx, DefaultComponents)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.ComponentDirPath(), 0755); err != nil {
		return nil, err
	}
	for _, name := range set.Names() {
		src, _ := set.Source(name)
		if err := os.WriteFile(cfg.ComponentPath(name), []byte(src), 0644); err != nil {
			return nil, err
		}
	}
	return set.Names(), nil
}

// Initializer runs every init step against one project.
type Initializer struct {
	Config *config.Config

	// Client supplies the default components. A nil Client skips them.
	Client  registry.Client
	Printer *output.Printer

	Force bool

	// WriteConfig also writes starui.yaml.
	WriteConfig bool

	Verbose bool
}

// Run initializes the project. Only the default component installation may
// fail without aborting.
func (i *Initializer) Run(ctx context.Context) error {
	cfg := i.Config
	if err := Validate(cfg, i.Force); err != nil {
		return err
	}

	if err := SetupDirectories(cfg); err != nil {
		return err
	}
	if i.Verbose {
		i.Printer.Info("Created %s", i.rel(cfg.ComponentDirPath()))
	}

	created, err := CreateCSSInput(cfg)
	if err != nil {
		return err
	}
	i.report(created, cfg.InputCSSPath())

	if i.Client != nil {
		i.addDefaults(ctx)
	} else {
		output.Debug("default components skipped", "reason", "no registry")
	}

	if created, err = CreateApp(cfg); err != nil {
		return err
	}
	i.report(created, filepath.Join(cfg.Root(), FileApp))

	updated, err := UpdateGitignore(cfg)
	if err != nil {
		return err
	}
	if updated && i.Verbose {
		i.Printer.Info("Updated .gitignore")
	}

	if i.WriteConfig {
		if created, err = CreateConfigFile(cfg); err != nil {
			return err
		}
		i.report(created, cfg.ConfigPath())
	}

	i.Printer.Success("StarUI initialized!")
	i.Printer.Println("")
	i.Printer.Println("Next steps:")
	i.Printer.Info("1. star add button")
	i.Printer.Info("2. star build --watch")
	i.Printer.Info("3. python app.py")
	return nil
}

func (i *Initializer) addDefaults(ctx context.Context) {
	var names []string
	err := output.RunWithSpinner(ctx, "Adding default components...", func() error {
		var err error
		names, err = AddDefaultComponents(ctx, i.Config, i.Client)
		return err
	})
	switch {
	case err != nil && i.Verbose:
		i.Printer.Warn("Could not add default components: %v", err)
	case err != nil:
		output.Debug("default components skipped", "err", err)
	case i.Verbose:
		i.Printer.Info("Added components: %s", strings.Join(names, ", "))
	}
}

func (i *Initializer) report(created bool, path string) {
	if !i.Verbose {
		return
	}
	if created {
		i.Printer.Info("Created %s", i.rel(path))
	} else {
		i.Printer.Info("Kept existing %s", i.rel(path))
	}
}

func (i *Initializer) rel(path string) string {
	return relSlash(i.Config.Root(), path)
}
