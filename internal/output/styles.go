package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette used across the CLI.
var (
	// ColorCyan is used for nouns: component names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for success marks.
	ColorGreen = lipgloss.Color("10")

	// ColorYellow is used for warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for failures.
	ColorRed = lipgloss.Color("196")

	// ColorDimGray is used for borders and hints.
	ColorDimGray = lipgloss.Color("240")
)

var (
	// StyleNoun styles identifiable nouns (component names, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleSuccess styles the success mark.
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

	// StyleWarn styles the warning mark.
	StyleWarn = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	// StyleError styles the failure mark.
	StyleError = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

	// StyleDim styles secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(ColorDimGray)

	// StyleBold styles headings and summaries.
	StyleBold = lipgloss.NewStyle().Bold(true)
)

// DisableColor forces plain output for all styles.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
