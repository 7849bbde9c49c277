package output

import (
	"fmt"
	"io"
	"os"
)

// Printer writes user-facing status lines. Commands hold one so tests can
// capture what a user would see.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer writing to out and errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{Out: out, Err: errOut}
}

// Stdio returns a Printer bound to the process stdout and stderr.
func Stdio() *Printer {
	return NewPrinter(os.Stdout, os.Stderr)
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", StyleSuccess.Render("✓"), fmt.Sprintf(format, args...))
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.Out, "  %s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning line to the error stream.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", StyleWarn.Render("⚠"), fmt.Sprintf(format, args...))
}

// Error prints a failure line to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", StyleError.Render("✗"), fmt.Sprintf(format, args...))
}

// Hint prints a dimmed line.
func (p *Printer) Hint(format string, args ...any) {
	fmt.Fprintln(p.Out, StyleDim.Render(fmt.Sprintf(format, args...)))
}

// Println prints a plain line to stdout.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.Out, s)
}
