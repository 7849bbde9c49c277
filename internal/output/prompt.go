package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// Prompt reads answers from an input stream. It is safe to reuse across
// several questions.
type Prompt struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompt returns a Prompt reading from in and writing questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{out: out, reader: bufio.NewReader(in)}
}

// StdinPrompt returns a Prompt bound to stdin and stdout.
func StdinPrompt() *Prompt {
	return NewPrompt(os.Stdin, os.Stdout)
}

func (p *Prompt) readLine() (string, bool) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Confirm asks a yes/no question. An empty answer or a read failure returns
// defaultYes.
func (p *Prompt) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultYes
}

// Select shows numbered options and returns the zero-based index chosen.
// An empty, unreadable or out-of-range answer returns def.
func (p *Prompt) Select(message string, options []string, def int) int {
	fmt.Fprintln(p.out, promptStyle.Render(message))
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, hintStyle.Render(fmt.Sprintf("Choice (%d)", def+1))+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return def
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return def
	}
	return n - 1
}
