package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starui-dev/star/internal/registry"
	"github.com/starui-dev/star/internal/textedit"
)

// HighlightFile is the stylesheet holding code highlighting rules.
const HighlightFile = "starlighter.css"

// HighlightImport pulls HighlightFile into the input stylesheet.
const HighlightImport = "@import './starlighter.css';"

type themeChoice struct {
	light string
	dark  string
	label string
}

var themeChoices = []themeChoice{
	{light: "github-light", dark: "github-dark", label: "GitHub (light/dark auto-switching) [default]"},
	{dark: "monokai", label: "Monokai (dark only)"},
	{dark: "dracula", label: "Dracula (dark only)"},
}

func (i *Installer) chooseTheme(theme string) themeChoice {
	if theme != "" {
		return themeChoice{dark: theme}
	}
	if i.Prompt == nil {
		return themeChoices[0]
	}

	labels := make([]string, len(themeChoices))
	for n, c := range themeChoices {
		labels[n] = c.label
	}
	idx := i.Prompt.Select("Select a syntax highlighting theme:", labels, 0)
	if idx < 0 || idx >= len(themeChoices) {
		idx = 0
	}
	return themeChoices[idx]
}

// HighlightCSS renders the stylesheet for a light/dark theme pair. An empty
// light theme produces a single dark-only theme under :root.
func HighlightCSS(light, dark string) (string, error) {
	themes, err := registry.Themes()
	if err != nil {
		return "", err
	}
	lookup := func(name string) (registry.Theme, error) {
		t, ok := themes[name]
		if !ok {
			return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(registry.ThemeNames(), ", "))
		}
		return t, nil
	}

	parts := []string{registry.HighlightCSS()}

	darkTheme, err := lookup(dark)
	if err != nil {
		return "", err
	}
	if light != "" {
		lightTheme, err := lookup(light)
		if err != nil {
			return "", err
		}
		parts = append(parts,
			lightTheme.Rule(":root"),
			darkTheme.Rule(".dark"),
			darkTheme.Rule("[data-theme='dark']"),
		)
	} else {
		parts = append(parts, darkTheme.Rule(":root"))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func (i *Installer) setupHighlighting(theme string) error {
	choice := i.chooseTheme(theme)

	css, err := HighlightCSS(choice.light, choice.dark)
	if err != nil {
		return err
	}

	cssDir := i.Config.CSSDir()
	if err := os.MkdirAll(cssDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(cssDir, HighlightFile), []byte(css), 0644); err != nil {
		return err
	}

	if choice.light != "" {
		i.Printer.Success("Generated %s with %s/%s theme (light/dark auto-switching)", HighlightFile, choice.light, choice.dark)
	} else {
		i.Printer.Success("Generated %s with %s theme (dark only)", HighlightFile, choice.dark)
	}

	inserted, err := textedit.InsertFileAfterAnchor(i.Config.InputCSSPath(), textedit.TailwindAnchor, []string{HighlightImport})
	if err != nil {
		return err
	}
	if len(inserted) > 0 {
		i.Printer.Info("Added %s import to input.css", HighlightFile)
	}
	i.Printer.Info("Run 'star build' to rebuild your styles")
	return nil
}
