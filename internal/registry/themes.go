package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed catalog/themes.json
var themesJSON []byte

//go:embed catalog/highlight.css
var highlightCSS string

// Theme maps CSS custom properties to values for code highlighting.
type Theme map[string]string

// Themes returns the bundled highlighting themes by name.
func Themes() (map[string]Theme, error) {
	var themes map[string]Theme
	if err := json.Unmarshal(themesJSON, &themes); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	return themes, nil
}

// ThemeNames returns the bundled theme names in sorted order.
func ThemeNames() []string {
	themes, err := Themes()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HighlightCSS returns the token rules that consume theme variables.
func HighlightCSS() string {
	return strings.TrimSpace(highlightCSS)
}

// Rule renders the theme as a CSS rule for selector, properties sorted.
func (t Theme) Rule(selector string) string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s: %s;\n", k, t[k])
	}
	b.WriteString("}")
	return b.String()
}
