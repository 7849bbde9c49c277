package scaffold

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/starui-dev/star/internal/config"
	"github.com/starui-dev/star/internal/errors"
)

// Data is the template input.
type Data struct {
	CSSHref         string
	ComponentModule string
}

// NewData derives template input from cfg.
func NewData(cfg *config.Config) Data {
	module := strings.Trim(filepath.ToSlash(filepath.Clean(cfg.ComponentDir)), "/")
	return Data{
		CSSHref:         "/" + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(cfg.CSSOutput)), "/"),
		ComponentModule: strings.ReplaceAll(module, "/", "."),
	}
}

// Files that can be rendered.
const (
	FileInputCSS = "input.css"
	FileApp      = "app.py"
)

var files = map[string]string{
	FileInputCSS: inputCSS,
	FileApp:      appPy,
}

// Render executes the named file template.
func Render(name string, data Data) ([]byte, error) {
	src, ok := files[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "unknown template %s", name)
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", name, err)
	}
	return buf.Bytes(), nil
}

const inputCSS = `@import "tailwindcss";

@custom-variant dark (&:where(.dark, .dark *, [data-theme="dark"], [data-theme="dark"] *));

@theme {
  --color-background: var(--background);
  --color-foreground: var(--foreground);
  --color-card: var(--card);
  --color-card-foreground: var(--card-foreground);
  --color-popover: var(--popover);
  --color-popover-foreground: var(--popover-foreground);
  --color-primary: var(--primary);
  --color-primary-foreground: var(--primary-foreground);
  --color-secondary: var(--secondary);
  --color-secondary-foreground: var(--secondary-foreground);
  --color-muted: var(--muted);
  --color-muted-foreground: var(--muted-foreground);
  --color-accent: var(--accent);
  --color-accent-foreground: var(--accent-foreground);
  --color-destructive: var(--destructive);
  --color-border: var(--border);
  --color-input: var(--input);
  --color-ring: var(--ring);
  --radius-sm: calc(var(--radius) - 4px);
  --radius-md: calc(var(--radius) - 2px);
  --radius-lg: var(--radius);
  --radius-xl: calc(var(--radius) + 4px);
}

:root {
  --radius: 0.625rem;
  --background: oklch(1 0 0);
  --foreground: oklch(0.145 0 0);
  --card: oklch(1 0 0);
  --card-foreground: oklch(0.145 0 0);
  --popover: oklch(1 0 0);
  --popover-foreground: oklch(0.145 0 0);
  --primary: oklch(0.205 0 0);
  --primary-foreground: oklch(0.985 0 0);
  --secondary: oklch(0.97 0 0);
  --secondary-foreground: oklch(0.205 0 0);
  --muted: oklch(0.97 0 0);
  --muted-foreground: oklch(0.556 0 0);
  --accent: oklch(0.97 0 0);
  --accent-foreground: oklch(0.205 0 0);
  --destructive: oklch(0.577 0.245 27.325);
  --border: oklch(0.922 0 0);
  --input: oklch(0.922 0 0);
  --ring: oklch(0.708 0 0);
}

.dark {
  --background: oklch(0.145 0 0);
  --foreground: oklch(0.985 0 0);
  --card: oklch(0.205 0 0);
  --card-foreground: oklch(0.985 0 0);
  --popover: oklch(0.205 0 0);
  --popover-foreground: oklch(0.985 0 0);
  --primary: oklch(0.922 0 0);
  --primary-foreground: oklch(0.205 0 0);
  --secondary: oklch(0.269 0 0);
  --secondary-foreground: oklch(0.985 0 0);
  --muted: oklch(0.269 0 0);
  --muted-foreground: oklch(0.708 0 0);
  --accent: oklch(0.269 0 0);
  --accent-foreground: oklch(0.985 0 0);
  --destructive: oklch(0.704 0.191 22.216);
  --border: oklch(1 0 0 / 10%);
  --input: oklch(1 0 0 / 15%);
  --ring: oklch(0.556 0 0);
}

@layer base {
  * {
    @apply border-border;
  }
  body {
    @apply bg-background text-foreground;
  }
}
`

const appPy = `from starhtml import *

from {{.ComponentModule}}.theme_toggle import ThemeToggle

app, rt = star_app(
    hdrs=(Link(rel="stylesheet", href="{{.CSSHref}}"),),
    htmlkw={"lang": "en"},
)


@rt("/")
def home():
    return Div(
        Div(ThemeToggle(), cls="flex justify-end"),
        H1("Welcome to StarUI", cls="text-3xl font-bold"),
        P("Add components with: star add button", cls="text-muted-foreground"),
        cls="container mx-auto p-8 space-y-4",
    )


serve()
`
