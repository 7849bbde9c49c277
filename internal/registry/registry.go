package registry

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// Component describes one installable component.
type Component struct {
	Name         string   `json:"name,omitempty" validate:"required,component"`
	Description  string   `json:"description" validate:"required"`
	Category     string   `json:"category,omitempty" validate:"omitempty,oneof=ui form layout overlay feedback navigation data"`
	Dependencies []string `json:"dependencies" validate:"dive,component"`
	Packages     []string `json:"packages,omitempty" validate:"dive,required"`
	CSSImports   []string `json:"cssImports,omitempty" validate:"dive,required"`
}

// DisplayCategory returns the explicit category, or one inferred from the
// name and description.
func (c *Component) DisplayCategory() string {
	if c.Category != "" {
		return c.Category
	}
	return InferCategory(c.Name, c.Description)
}

// Manifest represents the registry manifest.
type Manifest struct {
	ManifestVersion int                  `json:"manifestVersion" validate:"gte=1"`
	Version         string               `json:"version"`
	Components      map[string]Component `json:"components"`
}

// Names returns the component names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Components))
	for name := range m.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Client is a read-only view of a component catalog.
type Client interface {
	// List returns all component names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Metadata returns the metadata of one component.
	Metadata(ctx context.Context, name string) (*Component, error)

	// Source returns the source text of one component.
	Source(ctx context.Context, name string) (string, error)
}

var (
	requestPattern   = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	componentPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// ValidRequestName reports whether a user-supplied name is acceptable
// before normalization. Hyphens are allowed.
func ValidRequestName(name string) bool {
	return requestPattern.MatchString(name)
}

// NormalizeName maps a requested name onto its catalog key.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// PascalName converts a component name to the exported symbol it provides,
// e.g. "alert_dialog" to "AlertDialog".
func PascalName(name string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(NormalizeName(name), func(r rune) bool { return r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

type categoryRule struct {
	category string
	keywords []string
}

// Order matters: the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{"overlay", []string{"dialog", "modal", "popover", "sheet", "tooltip", "hover_card", "dropdown", "drawer"}},
	{"feedback", []string{"toast", "alert", "progress", "skeleton", "notification", "spinner"}},
	{"form", []string{"input", "label", "checkbox", "select", "textarea", "switch", "radio", "form", "slider"}},
	{"navigation", []string{"tabs", "breadcrumb", "menu", "navigation", "command", "pagination"}},
	{"layout", []string{"card", "separator", "accordion", "layout", "typography", "collapsible"}},
	{"data", []string{"table", "code", "calendar", "chart", "avatar", "date"}},
	{"ui", []string{"button", "badge", "toggle", "icon"}},
}

// InferCategory guesses a category from a component's name and then from
// its description. It returns "" when nothing matches.
func InferCategory(name, description string) string {
	name = strings.ToLower(NormalizeName(name))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}

	description = strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(description, kw) {
				return rule.category
			}
		}
	}
	return ""
}
