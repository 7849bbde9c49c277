package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTTY reports whether stdin is an interactive terminal.
func IsInputTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
