package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	styleCode   = lipgloss.NewStyle().Bold(true)
	styleHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleLink   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true)
)

// colorEnabled controls whether styles are applied.
var colorEnabled = true

// DisableColors disables styled output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables styled output.
func EnableColors() {
	colorEnabled = true
}

func render(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}

// Format returns the error formatted for terminal display.
func (e *StarError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(render(styleHeader, "ERROR "))
		b.WriteString(render(styleCode, e.Code+": "))
	} else {
		b.WriteString(render(styleHeader, "ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(render(styleHint, "Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	if e.DocURL != "" {
		b.WriteString("  ")
		b.WriteString(render(styleMuted, "Learn more: "))
		b.WriteString(render(styleLink, e.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a single-line error format.
func (e *StarError) FormatCompact() string {
	return e.Error()
}

// wrapText wraps text to the specified width. Existing newlines are kept.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if len(para) <= width {
			lines = append(lines, para)
			continue
		}

		var current strings.Builder
		for _, word := range strings.Fields(para) {
			if current.Len() > 0 && current.Len()+len(word)+1 > width {
				lines = append(lines, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(word)
		}
		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
	}
	return lines
}

// Fprint writes a formatted error to w.
func Fprint(w io.Writer, err error) {
	var se *StarError
	if As(err, &se) {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", render(styleHeader, "ERROR:"), err.Error())
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
